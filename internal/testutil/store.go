package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/roach88/consulta/internal/auth"
	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/store"
)

// Passwords hashes with the minimum bcrypt cost to keep tests fast.
var Passwords = auth.Passwords{Cost: bcrypt.MinCost}

// SeedPassword is the password of every seeded usuario.
const SeedPassword = "senha123"

// OpenStore opens a fresh store in a temporary directory with a StepClock
// advancing one second per write. The store is closed on cleanup.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	clock := NewStepClock(time.Second)
	s, err := store.Open(filepath.Join(t.TempDir(), "consulta.db"), store.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// DefaultUsuarios is the seed data used by SeedUsuarios when none is given.
var DefaultUsuarios = []entity.NovoUsuario{
	{Nome: "Ana Souza", Login: "ana", Perfil: "admin"},
	{Nome: "Bruno Lima", Login: "bruno", Perfil: "leitor"},
	{Nome: "Carla Dias", Login: "carla", Perfil: "leitor"},
	{Nome: "Diego Alves", Login: "diego", Perfil: "editor"},
}

// SeedUsuarios inserts usuarios (DefaultUsuarios if none are given), all
// with SeedPassword unless Senha is set, and returns the stored records in
// insertion order.
func SeedUsuarios(t *testing.T, s *store.Store, usuarios ...entity.NovoUsuario) []entity.Usuario {
	t.Helper()
	if len(usuarios) == 0 {
		usuarios = DefaultUsuarios
	}

	out := make([]entity.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		senha := u.Senha
		if senha == "" {
			senha = SeedPassword
		}
		hash, err := Passwords.Hash(senha)
		require.NoError(t, err)

		created, err := s.CreateUsuario(context.Background(), u, hash)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

// DefaultPerfis is the seed data used by SeedPerfis.
var DefaultPerfis = []entity.NovoPerfil{
	{Nome: "admin", Descricao: "Administrador"},
	{Nome: "editor", Descricao: "Pode editar cadastros"},
	{Nome: "leitor", Descricao: "Somente leitura"},
}

// SeedPerfis inserts DefaultPerfis.
func SeedPerfis(t *testing.T, s *store.Store) []entity.Perfil {
	t.Helper()
	out := make([]entity.Perfil, 0, len(DefaultPerfis))
	for _, p := range DefaultPerfis {
		created, err := s.CreatePerfil(context.Background(), p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}
