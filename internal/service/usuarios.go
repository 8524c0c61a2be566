package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/consulta/internal/auth"
	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/filter"
	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/store"
)

// Usuarios manages application users.
type Usuarios struct {
	store     *store.Store
	passwords auth.Passwords

	// decoy is compared against when a login does not exist, so unknown
	// and known logins cost the same bcrypt work.
	decoyOnce sync.Once
	decoy     string
}

// NewUsuarios creates the usuario service.
func NewUsuarios(s *store.Store, passwords auth.Passwords) *Usuarios {
	return &Usuarios{store: s, passwords: passwords}
}

// Criar hashes the password and stores a new usuario. A login already in
// use yields store.ErrConflict.
func (u *Usuarios) Criar(ctx context.Context, novo entity.NovoUsuario) (entity.Usuario, error) {
	hash, err := u.passwords.Hash(novo.Senha)
	if err != nil {
		return entity.Usuario{}, err
	}
	created, err := u.store.CreateUsuario(ctx, novo, hash)
	if err != nil {
		return entity.Usuario{}, err
	}
	slog.Info("usuario created", "id", created.ID, "login", created.Login)
	return created, nil
}

// Listar returns every usuario.
func (u *Usuarios) Listar(ctx context.Context) ([]entity.Usuario, error) {
	return u.store.ListUsuarios(ctx)
}

// Buscar returns one usuario or store.ErrNotFound.
func (u *Usuarios) Buscar(ctx context.Context, id int64) (entity.Usuario, error) {
	return u.store.GetUsuario(ctx, id)
}

// Atualizar applies a partial update. A new password is hashed first.
func (u *Usuarios) Atualizar(ctx context.Context, id int64, patch entity.UsuarioPatch) (entity.Usuario, error) {
	var hash string
	if patch.Senha != nil {
		h, err := u.passwords.Hash(*patch.Senha)
		if err != nil {
			return entity.Usuario{}, err
		}
		hash = h
	}
	return u.store.UpdateUsuario(ctx, id, patch, hash)
}

// Remover deletes a usuario or returns store.ErrNotFound.
func (u *Usuarios) Remover(ctx context.Context, id int64) error {
	if err := u.store.DeleteUsuario(ctx, id); err != nil {
		return err
	}
	slog.Info("usuario removed", "id", id)
	return nil
}

// Consultar runs a filtered query over usuarios.
func (u *Usuarios) Consultar(ctx context.Context, req query.Request) ([]entity.Usuario, error) {
	return consultar(ctx, u.store, entity.UsuarioSchema, req)
}

// Autenticar checks a login and password. The usuario is looked up with a
// filtered query on login; an unknown login and a wrong password both
// yield auth.ErrInvalidCredentials.
func (u *Usuarios) Autenticar(ctx context.Context, login, senha string) (entity.Usuario, error) {
	found, err := u.Consultar(ctx, query.Request{
		Filtros: filter.Group{filter.Eq("login", login)},
	}.WithLimit(1))
	if err != nil {
		return entity.Usuario{}, fmt.Errorf("lookup login: %w", err)
	}
	if len(found) == 0 {
		u.passwords.Verify(u.decoyHash(), senha)
		return entity.Usuario{}, auth.ErrInvalidCredentials
	}
	usuario := found[0]

	hash, err := u.store.PasswordHash(ctx, usuario.ID)
	if errors.Is(err, store.ErrNotFound) {
		u.passwords.Verify(u.decoyHash(), senha)
		return entity.Usuario{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return entity.Usuario{}, err
	}
	if err := u.passwords.Verify(hash, senha); err != nil {
		return entity.Usuario{}, err
	}
	return usuario, nil
}

// decoyHash returns a hash at the configured cost that no password matches
// in practice. It is computed on first use.
func (u *Usuarios) decoyHash() string {
	u.decoyOnce.Do(func() {
		h, err := u.passwords.Hash("consulta: login inexistente")
		if err != nil {
			slog.Error("decoy hash", "error", err)
			return
		}
		u.decoy = h
	})
	return u.decoy
}
