// Package memory is an in-process user store for running the auth server
// without a database.
package memory

import (
	"context"
	"sync"

	"auwalk/internal/domain"
	"auwalk/pkg/errors"
)

type UsuarioRepository struct {
	mu     sync.RWMutex
	nextID int64
	byMail map[string]*domain.Usuario
}

func NewUsuarioRepository() *UsuarioRepository {
	return &UsuarioRepository{nextID: 1, byMail: make(map[string]*domain.Usuario)}
}

// Add stores a user; senha must already be hashed or be a legacy plaintext value.
func (r *UsuarioRepository) Add(email, senha string) *domain.Usuario {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := &domain.Usuario{ID: r.nextID, Email: email, Senha: senha}
	r.nextID++
	r.byMail[email] = u
	return u
}

// FindByEmail matches the address exactly, as the usuario table does.
func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byMail[email]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}
