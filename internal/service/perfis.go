package service

import (
	"context"

	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/store"
)

// Perfis manages access profiles.
type Perfis struct {
	store *store.Store
}

// NewPerfis creates the perfil service.
func NewPerfis(s *store.Store) *Perfis {
	return &Perfis{store: s}
}

// Criar stores a new perfil.
func (p *Perfis) Criar(ctx context.Context, novo entity.NovoPerfil) (entity.Perfil, error) {
	return p.store.CreatePerfil(ctx, novo)
}

// Listar returns every perfil.
func (p *Perfis) Listar(ctx context.Context) ([]entity.Perfil, error) {
	return p.store.ListPerfis(ctx)
}

// Consultar runs a filtered query over perfis.
func (p *Perfis) Consultar(ctx context.Context, req query.Request) ([]entity.Perfil, error) {
	return consultar(ctx, p.store, entity.PerfilSchema, req)
}
