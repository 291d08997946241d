// Package probe sends one-shot login requests to the AuWalk auth endpoint and
// reports what came back, without judging whether the server was right.
package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"auwalk/pkg/config"
)

// Credentials is the login payload. Field order is the wire order.
type Credentials struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Case is one labelled login attempt.
type Case struct {
	Label       string
	Title       string
	Credentials Credentials
	// Hint is printed after a transport error, when set.
	Hint string
}

// Outcome classifies how a single attempt ended.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeDecodeError    Outcome = "decode_error"
)

// Result is what one attempt produced. StatusCode is zero on a transport
// error; Body is set only when Outcome is OutcomeOK.
type Result struct {
	Case       Case
	Outcome    Outcome
	StatusCode int
	Body       json.RawMessage
	Raw        []byte
	Err        error
	RequestID  string
	Duration   time.Duration
}

// Pretty renders Body with two-space indentation, keeping the server's key
// order. Non-ASCII characters are written as \uXXXX escapes.
func (r Result) Pretty() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(r.Body), "", "  "); err != nil {
		return "", err
	}
	return escapeNonASCII(buf.String()), nil
}

// escapeNonASCII only ever touches string contents: outside strings valid
// JSON is pure ASCII.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c < utf8.RuneSelf:
			b.WriteRune(c)
		case c > 0xFFFF:
			hi, lo := utf16.EncodeRune(c)
			fmt.Fprintf(&b, "\\u%04x\\u%04x", hi, lo)
		default:
			fmt.Fprintf(&b, "\\u%04x", c)
		}
	}
	return b.String()
}

// DefaultCases returns the valid-then-invalid pair built from cfg.
func DefaultCases(cfg config.ProbeConfig) []Case {
	return []Case{
		{
			Label: "[TESTE 1]",
			Title: "Tentando login com credenciais VÁLIDAS...",
			Credentials: Credentials{
				Email: cfg.Valid.Email,
				Senha: cfg.Valid.Senha,
			},
			Hint: "Verifique se a sua aplicação backend está rodando no endereço correto.",
		},
		{
			Label: "[TESTE 2]",
			Title: "Tentando login com credenciais INVÁLIDAS...",
			Credentials: Credentials{
				Email: cfg.Invalid.Email,
				Senha: cfg.Invalid.Senha,
			},
		},
	}
}
