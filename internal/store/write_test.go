package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/consulta/internal/entity"
)

func TestCreateUsuario(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUsuario(ctx, entity.NovoUsuario{
		Nome:   "Ana",
		Login:  "ana",
		Senha:  "ignored",
		Perfil: "admin",
	}, "$2a$hash")
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Ana", u.Nome)
	assert.True(t, u.DataCriacao.Equal(fixedNow))

	got, err := s.GetUsuario(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Login, got.Login)
	assert.True(t, got.DataCriacao.Equal(fixedNow))

	hash, err := s.PasswordHash(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$hash", hash)
}

func TestCreateUsuario_DuplicateLogin(t *testing.T) {
	s := createTestStore(t)
	createTestUsuario(t, s, "ana")

	_, err := s.CreateUsuario(context.Background(), entity.NovoUsuario{
		Nome: "Outra Ana", Login: "ana", Perfil: "user",
	}, "x")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestUpdateUsuario_Partial(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	u := createTestUsuario(t, s, "ana")

	nome := "Ana Maria"
	got, err := s.UpdateUsuario(ctx, u.ID, entity.UsuarioPatch{Nome: &nome}, "")
	require.NoError(t, err)

	assert.Equal(t, "Ana Maria", got.Nome)
	assert.Equal(t, "ana", got.Login)
	assert.Equal(t, "admin", got.Perfil)

	hash, err := s.PasswordHash(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-ana", hash)
}

func TestUpdateUsuario_Password(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	u := createTestUsuario(t, s, "ana")

	_, err := s.UpdateUsuario(ctx, u.ID, entity.UsuarioPatch{}, "novo-hash")
	require.NoError(t, err)

	hash, err := s.PasswordHash(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "novo-hash", hash)
}

func TestUpdateUsuario_EmptyPatchReturnsCurrent(t *testing.T) {
	s := createTestStore(t)
	u := createTestUsuario(t, s, "ana")

	got, err := s.UpdateUsuario(context.Background(), u.ID, entity.UsuarioPatch{}, "")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUpdateUsuario_NotFound(t *testing.T) {
	s := createTestStore(t)

	nome := "x"
	_, err := s.UpdateUsuario(context.Background(), 99, entity.UsuarioPatch{Nome: &nome}, "")
	assert.True(t, IsNotFound(err))

	_, err = s.UpdateUsuario(context.Background(), 99, entity.UsuarioPatch{}, "")
	assert.True(t, IsNotFound(err))
}

func TestUpdateUsuario_LoginConflict(t *testing.T) {
	s := createTestStore(t)
	createTestUsuario(t, s, "ana")
	bia := createTestUsuario(t, s, "bia")

	login := "ana"
	_, err := s.UpdateUsuario(context.Background(), bia.ID, entity.UsuarioPatch{Login: &login}, "")
	assert.True(t, IsConflict(err))
}

func TestDeleteUsuario(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	u := createTestUsuario(t, s, "ana")

	require.NoError(t, s.DeleteUsuario(ctx, u.ID))

	_, err := s.GetUsuario(ctx, u.ID)
	assert.True(t, IsNotFound(err))

	err = s.DeleteUsuario(ctx, u.ID)
	assert.True(t, IsNotFound(err))
}

func TestCreatePerfil(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePerfil(ctx, entity.NovoPerfil{Nome: "admin", Descricao: "Administrador"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	got, err := s.GetPerfil(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestWrites_StoreNFC(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUsuario(ctx, entity.NovoUsuario{
		Nome: "José", Login: "josé", Perfil: "gestão",
	}, "hash")
	require.NoError(t, err)
	assert.Equal(t, "josé", u.Login)

	var nome, login, perfil string
	require.NoError(t, s.DB().QueryRow(`SELECT nome, login, perfil FROM usuarios WHERE id = ?`, u.ID).
		Scan(&nome, &login, &perfil))
	assert.Equal(t, "José", nome)
	assert.Equal(t, "josé", login)
	assert.Equal(t, "gestão", perfil)

	nomeNovo := "Inês"
	got, err := s.UpdateUsuario(ctx, u.ID, entity.UsuarioPatch{Nome: &nomeNovo}, "")
	require.NoError(t, err)
	assert.Equal(t, "Inês", got.Nome)

	p, err := s.CreatePerfil(ctx, entity.NovoPerfil{Nome: "gestão", Descricao: "Gestão de acessos"})
	require.NoError(t, err)
	assert.Equal(t, "gestão", p.Nome)
	stored, err := s.GetPerfil(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gestão de acessos", stored.Descricao)
}
