package entity

import "github.com/roach88/consulta/internal/schema"

// Perfil is a named access profile.
type Perfil struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

// PerfilSchema is the queryable surface of the perfil table.
var PerfilSchema = schema.MustNew("perfil",
	schema.Col("id", func(p *Perfil) any { return &p.ID }),
	schema.Col("nome", func(p *Perfil) any { return &p.Nome }),
	schema.Col("descricao", func(p *Perfil) any { return &p.Descricao }),
)

// NovoPerfil carries the fields needed to create a profile.
type NovoPerfil struct {
	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao" binding:"required"`
}
