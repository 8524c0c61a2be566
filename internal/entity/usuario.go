package entity

import (
	"time"

	"github.com/roach88/consulta/internal/schema"
)

// Usuario is an application user as returned to callers.
type Usuario struct {
	ID          int64     `json:"id"`
	Nome        string    `json:"nome"`
	Login       string    `json:"login"`
	Perfil      string    `json:"perfil"`
	DataCriacao time.Time `json:"data_criacao"`
}

// UsuarioSchema is the queryable surface of the usuarios table.
var UsuarioSchema = schema.MustNew("usuarios",
	schema.Col("id", func(u *Usuario) any { return &u.ID }),
	schema.Col("nome", func(u *Usuario) any { return &u.Nome }),
	schema.Col("login", func(u *Usuario) any { return &u.Login }),
	schema.Col("perfil", func(u *Usuario) any { return &u.Perfil }),
	schema.Col("data_criacao", func(u *Usuario) any { return &u.DataCriacao }),
)

// NovoUsuario carries the fields needed to create a user. Senha is the
// plain-text password; it is hashed before it reaches the store.
type NovoUsuario struct {
	Nome   string `json:"nome" binding:"required"`
	Login  string `json:"login" binding:"required"`
	Senha  string `json:"senha" binding:"required"`
	Perfil string `json:"perfil" binding:"required"`
}

// UsuarioPatch is a partial update. Nil fields are left untouched.
type UsuarioPatch struct {
	Nome   *string `json:"nome,omitempty"`
	Login  *string `json:"login,omitempty"`
	Senha  *string `json:"senha,omitempty"`
	Perfil *string `json:"perfil,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p UsuarioPatch) Empty() bool {
	return p.Nome == nil && p.Login == nil && p.Senha == nil && p.Perfil == nil
}
