package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginInput struct {
	Email string `validate:"required,nonblank"`
	Senha string `validate:"required,nonblank"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(loginInput{Email: "usuario@exemplo.com", Senha: "senha123"}))

	err := v.Validate(loginInput{Email: "   ", Senha: "senha123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loginInput.Email")
	assert.Contains(t, err.Error(), "nonblank")
}

func TestValidateStructured(t *testing.T) {
	v := New()

	assert.Nil(t, v.ValidateStructured(loginInput{Email: "bob@email.com", Senha: "1234"}))

	errs := v.ValidateStructured(loginInput{Email: "bob@email.com"})
	assert.Equal(t, map[string]string{"Senha": "This field is required"}, errs)
}
