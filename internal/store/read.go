package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/consulta/internal/entity"
)

const usuarioColumns = `id, nome, login, perfil, data_criacao`

// GetUsuario returns the user with the given id, or ErrNotFound.
func (s *Store) GetUsuario(ctx context.Context, id int64) (entity.Usuario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id = ?`, id)

	u, err := scanUsuario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Usuario{}, fmt.Errorf("usuario %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return entity.Usuario{}, fmt.Errorf("get usuario %d: %w", id, err)
	}
	return u, nil
}

// ListUsuarios returns every user ordered by id.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListUsuarios(ctx context.Context) ([]entity.Usuario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query usuarios: %w", err)
	}
	defer rows.Close()

	usuarios := []entity.Usuario{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		usuarios = append(usuarios, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usuarios: %w", err)
	}
	return usuarios, nil
}

// PasswordHash returns the stored password hash of a user.
func (s *Store) PasswordHash(ctx context.Context, id int64) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT senha FROM usuarios WHERE id = ?`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("usuario %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read password hash %d: %w", id, err)
	}
	return hash, nil
}

// GetPerfil returns the profile with the given id, or ErrNotFound.
func (s *Store) GetPerfil(ctx context.Context, id int64) (entity.Perfil, error) {
	var p entity.Perfil
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nome, descricao FROM perfil WHERE id = ?`, id).
		Scan(&p.ID, &p.Nome, &p.Descricao)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Perfil{}, fmt.Errorf("perfil %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return entity.Perfil{}, fmt.Errorf("get perfil %d: %w", id, err)
	}
	return p, nil
}

// ListPerfis returns every profile ordered by id.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListPerfis(ctx context.Context) ([]entity.Perfil, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nome, descricao FROM perfil ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query perfis: %w", err)
	}
	defer rows.Close()

	perfis := []entity.Perfil{}
	for rows.Next() {
		var p entity.Perfil
		if err := rows.Scan(&p.ID, &p.Nome, &p.Descricao); err != nil {
			return nil, fmt.Errorf("scan perfil: %w", err)
		}
		perfis = append(perfis, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate perfis: %w", err)
	}
	return perfis, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUsuario(r rowScanner) (entity.Usuario, error) {
	var u entity.Usuario
	err := r.Scan(&u.ID, &u.Nome, &u.Login, &u.Perfil, &u.DataCriacao)
	return u, err
}
