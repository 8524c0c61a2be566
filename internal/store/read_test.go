package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/consulta/internal/entity"
)

func TestListUsuarios_Empty(t *testing.T) {
	s := createTestStore(t)

	usuarios, err := s.ListUsuarios(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, usuarios)
	assert.Empty(t, usuarios)
}

func TestListUsuarios_OrderedByID(t *testing.T) {
	s := createTestStore(t)
	createTestUsuario(t, s, "carla")
	createTestUsuario(t, s, "ana")
	createTestUsuario(t, s, "bia")

	usuarios, err := s.ListUsuarios(context.Background())
	require.NoError(t, err)
	require.Len(t, usuarios, 3)

	assert.Equal(t, "carla", usuarios[0].Login)
	assert.Equal(t, "ana", usuarios[1].Login)
	assert.Equal(t, "bia", usuarios[2].Login)
}

func TestGetUsuario_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetUsuario(context.Background(), 42)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "usuario 42")
}

func TestPasswordHash_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.PasswordHash(context.Background(), 42)
	assert.True(t, IsNotFound(err))
}

func TestListPerfis(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	perfis, err := s.ListPerfis(ctx)
	require.NoError(t, err)
	assert.Empty(t, perfis)

	_, err = s.CreatePerfil(ctx, entity.NovoPerfil{Nome: "admin", Descricao: "Administrador"})
	require.NoError(t, err)
	_, err = s.CreatePerfil(ctx, entity.NovoPerfil{Nome: "leitor", Descricao: "Somente leitura"})
	require.NoError(t, err)

	perfis, err = s.ListPerfis(ctx)
	require.NoError(t, err)
	require.Len(t, perfis, 2)
	assert.Equal(t, "leitor", perfis[1].Nome)
}

func TestGetPerfil_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetPerfil(context.Background(), 1)
	assert.True(t, IsNotFound(err))
}
