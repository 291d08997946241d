package postgres

import (
	"context"
	"database/sql"

	"auwalk/internal/domain"
	"auwalk/pkg/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type UsuarioRepository struct {
	db *sqlx.DB
}

func NewUsuarioRepository(db *sqlx.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := r.db.GetContext(ctx, &u, `SELECT id, email, senha FROM usuario WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find usuario")
	}
	return &u, nil
}

// Ensure inserts the user unless the email is already taken and returns the
// stored row either way.
func (r *UsuarioRepository) Ensure(ctx context.Context, email, senha string) (*domain.Usuario, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usuario (email, senha) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
		email, senha)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert usuario")
	}
	return r.FindByEmail(ctx, email)
}
