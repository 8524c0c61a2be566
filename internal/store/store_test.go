package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/consulta/internal/entity"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUsuario(t *testing.T, s *Store, login string) entity.Usuario {
	t.Helper()
	u, err := s.CreateUsuario(context.Background(), entity.NovoUsuario{
		Nome:   "Usuario " + login,
		Login:  login,
		Perfil: "admin",
	}, "hash-"+login)
	require.NoError(t, err)
	return u
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.CreatePerfil(context.Background(), entity.NovoPerfil{Nome: "admin", Descricao: "Administrador"})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	perfis, err := s2.ListPerfis(context.Background())
	require.NoError(t, err)
	assert.Len(t, perfis, 1)
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	assert.Error(t, err)
}

func TestOpen_Tables(t *testing.T) {
	s := createTestStore(t)

	for _, table := range []string{"usuarios", "perfil", "permissao", "perfilpermissao"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var index string
	err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_usuarios_perfil'`).Scan(&index)
	assert.NoError(t, err)
}

func TestLikeIsCaseSensitive(t *testing.T) {
	s := createTestStore(t)
	createTestUsuario(t, s, "Ana")

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT count(*) FROM usuarios WHERE login LIKE ?`, "%an%").Scan(&n))
	assert.Equal(t, 0, n)

	require.NoError(t, s.DB().QueryRow(`SELECT count(*) FROM usuarios WHERE lower(login) LIKE lower(?)`, "%AN%").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestQuery(t *testing.T) {
	s := createTestStore(t)
	createTestUsuario(t, s, "ana")

	var q Querier = s
	rows, err := q.Query(context.Background(), `SELECT login FROM usuarios WHERE login = ?`, "ana")
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var login string
	require.NoError(t, rows.Scan(&login))
	assert.Equal(t, "ana", login)
	assert.False(t, rows.Next())
}

func TestPing(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestClose_Twice(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, (&Store{}).Close())
}
