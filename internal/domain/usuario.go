// Package domain holds the entities shared by the auth server packages.
package domain

// Usuario is a row of the usuario table. Senha holds either a bcrypt hash or,
// for rows imported from the legacy backend, the plaintext password.
type Usuario struct {
	ID    int64  `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Senha string `db:"senha" json:"-"`
}
