package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/consulta/internal/entity"
)

// Text columns are stored NFC normalized, the same form filter values
// are converted to, so equality and LIKE comparisons see one spelling of
// each accented character.
func nfc(s string) string {
	return norm.NFC.String(s)
}

// CreateUsuario inserts a user with an already hashed password and returns
// the stored record. A duplicate login yields ErrConflict.
func (s *Store) CreateUsuario(ctx context.Context, u entity.NovoUsuario, senhaHash string) (entity.Usuario, error) {
	created := s.now().UTC()
	u.Nome, u.Login, u.Perfil = nfc(u.Nome), nfc(u.Login), nfc(u.Perfil)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO usuarios (nome, login, senha, perfil, data_criacao)
		VALUES (?, ?, ?, ?, ?)
	`,
		u.Nome,
		u.Login,
		senhaHash,
		u.Perfil,
		created,
	)
	if err != nil {
		return entity.Usuario{}, fmt.Errorf("create usuario: %w", translate(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entity.Usuario{}, fmt.Errorf("create usuario: %w", err)
	}

	return entity.Usuario{
		ID:          id,
		Nome:        u.Nome,
		Login:       u.Login,
		Perfil:      u.Perfil,
		DataCriacao: created,
	}, nil
}

// UpdateUsuario applies a partial update and returns the updated record.
// senhaHash replaces the stored hash when non-empty; patch.Senha is ignored
// here since hashing happens above the store.
func (s *Store) UpdateUsuario(ctx context.Context, id int64, patch entity.UsuarioPatch, senhaHash string) (entity.Usuario, error) {
	var sets []string
	var args []any

	if patch.Nome != nil {
		sets = append(sets, "nome = ?")
		args = append(args, nfc(*patch.Nome))
	}
	if patch.Login != nil {
		sets = append(sets, "login = ?")
		args = append(args, nfc(*patch.Login))
	}
	if patch.Perfil != nil {
		sets = append(sets, "perfil = ?")
		args = append(args, nfc(*patch.Perfil))
	}
	if senhaHash != "" {
		sets = append(sets, "senha = ?")
		args = append(args, senhaHash)
	}

	if len(sets) == 0 {
		return s.GetUsuario(ctx, id)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		"UPDATE usuarios SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return entity.Usuario{}, fmt.Errorf("update usuario %d: %w", id, translate(err))
	}
	if err := requireAffected(res, "usuario", id); err != nil {
		return entity.Usuario{}, err
	}

	return s.GetUsuario(ctx, id)
}

// DeleteUsuario removes a user. Returns ErrNotFound if it does not exist.
func (s *Store) DeleteUsuario(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete usuario %d: %w", id, err)
	}
	return requireAffected(res, "usuario", id)
}

// CreatePerfil inserts a profile and returns the stored record.
func (s *Store) CreatePerfil(ctx context.Context, p entity.NovoPerfil) (entity.Perfil, error) {
	p.Nome, p.Descricao = nfc(p.Nome), nfc(p.Descricao)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO perfil (nome, descricao)
		VALUES (?, ?)
	`, p.Nome, p.Descricao)
	if err != nil {
		return entity.Perfil{}, fmt.Errorf("create perfil: %w", translate(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entity.Perfil{}, fmt.Errorf("create perfil: %w", err)
	}

	return entity.Perfil{ID: id, Nome: p.Nome, Descricao: p.Descricao}, nil
}

func requireAffected(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
