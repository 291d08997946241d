package probe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"auwalk/internal/history"
	"auwalk/pkg/config"
	apperrors "auwalk/pkg/errors"
	"auwalk/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProbeConfig(baseURL string) config.ProbeConfig {
	return config.ProbeConfig{
		BaseURL:   baseURL,
		LoginPath: config.DefaultLoginPath,
		Valid:     config.CredentialConfig{Email: "usuario@exemplo.com", Senha: "senha123"},
		Invalid:   config.CredentialConfig{Email: "bob@email.com", Senha: "1234"},
	}
}

// loginServer answers each known email with a fixed status and body and
// keeps the raw request bodies in arrival order.
type loginServer struct {
	mu     sync.Mutex
	bodies []string
}

func (s *loginServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		s.mu.Lock()
		s.bodies = append(s.bodies, string(raw))
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(string(raw), "usuario@exemplo.com") {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"token": "abc"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid"}`))
	}
}

func TestRunner_ReportsBothCasesInOrder(t *testing.T) {
	ls := &loginServer{}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	cfg := testProbeConfig(srv.URL)
	var out bytes.Buffer
	runner := NewRunner(NewClient(cfg.LoginURL(), 0), NewReporter(&out), nil, logger.NewNop())

	results := runner.Run(context.Background(), DefaultCases(cfg))

	expected := `--- Iniciando testes na API de autenticação ---

[TESTE 1] Tentando login com credenciais VÁLIDAS...
Status Code: 200
Resposta JSON recebida:
{
  "token": "abc"
}

[TESTE 2] Tentando login com credenciais INVÁLIDAS...
Status Code: 401
Resposta JSON recebida:
{
  "error": "invalid"
}

--- Testes finalizados ---
`
	assert.Equal(t, expected, out.String())

	require.Len(t, results, 2)
	assert.Equal(t, 200, results[0].StatusCode)
	assert.Equal(t, 401, results[1].StatusCode)
	assert.Equal(t, "[TESTE 1]", results[0].Case.Label)
	assert.Equal(t, "[TESTE 2]", results[1].Case.Label)

	require.Len(t, ls.bodies, 2)
	assert.JSONEq(t, `{"email": "usuario@exemplo.com", "senha": "senha123"}`, ls.bodies[0])
	assert.JSONEq(t, `{"email": "bob@email.com", "senha": "1234"}`, ls.bodies[1])
}

func TestRunner_UnreachableServerReportsBothCases(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	cfg := testProbeConfig("http://" + addr)
	var out bytes.Buffer
	runner := NewRunner(NewClient(cfg.LoginURL(), 0), NewReporter(&out), nil, nil)

	results := runner.Run(context.Background(), DefaultCases(cfg))

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, OutcomeTransportError, res.Outcome)
		assert.True(t, apperrors.Is(res.Err, apperrors.ErrTransport))
	}

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "ERRO ao conectar na API: "))
	assert.Equal(t, 1, strings.Count(text, "Verifique se a sua aplicação backend está rodando no endereço correto."))
	assert.NotContains(t, text, "Status Code:")
	assert.True(t, strings.HasSuffix(text, "\n--- Testes finalizados ---\n"))
	assert.Less(t, strings.Index(text, "[TESTE 1]"), strings.Index(text, "[TESTE 2]"))
}

func TestRunner_SecondCaseRunsAfterFirstDropsConnection(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "token": null}`))
	}))
	defer srv.Close()

	cfg := testProbeConfig(srv.URL)
	var out bytes.Buffer
	results := NewRunner(NewClient(cfg.LoginURL(), 0), NewReporter(&out), nil, nil).
		Run(context.Background(), DefaultCases(cfg))

	require.Len(t, results, 2)
	assert.Equal(t, OutcomeTransportError, results[0].Outcome)
	assert.Equal(t, OutcomeOK, results[1].Outcome)
	assert.Equal(t, http.StatusUnauthorized, results[1].StatusCode)

	text := out.String()
	second := text[strings.Index(text, "[TESTE 2]"):]
	assert.Contains(t, second, "Status Code: 401\nResposta JSON recebida:\n{\n  \"success\": false,\n  \"token\": null\n}\n")
}

func TestRunner_DecodeErrorIsReportedNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer srv.Close()

	cfg := testProbeConfig(srv.URL)
	var out bytes.Buffer
	results := NewRunner(NewClient(cfg.LoginURL(), 0), NewReporter(&out), nil, nil).
		Run(context.Background(), DefaultCases(cfg))

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, OutcomeDecodeError, res.Outcome)
	}
	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Status Code: 500\nERRO ao interpretar a resposta JSON: "))
	assert.NotContains(t, text, "Resposta JSON recebida:")
}

type MockLoginClient struct {
	mock.Mock
}

func (m *MockLoginClient) Login(ctx context.Context, creds Credentials) Result {
	args := m.Called(ctx, creds)
	return args.Get(0).(Result)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, entry history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestRunner_RecordsEveryResult(t *testing.T) {
	cases := DefaultCases(testProbeConfig("http://example.invalid"))

	client := new(MockLoginClient)
	client.On("Login", mock.Anything, cases[0].Credentials).
		Return(Result{Outcome: OutcomeOK, StatusCode: 200, Body: []byte(`{}`), RequestID: "r1"}).Once()
	client.On("Login", mock.Anything, cases[1].Credentials).
		Return(Result{Outcome: OutcomeTransportError, Err: errors.New("boom"), RequestID: "r2"}).Once()

	rec := new(MockRecorder)
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e history.Entry) bool {
		return e.Case == "[TESTE 1]" && e.Outcome == "ok" && e.StatusCode == 200 && e.RequestID == "r1" && e.Email == "usuario@exemplo.com"
	})).Return(nil).Once()
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e history.Entry) bool {
		return e.Case == "[TESTE 2]" && e.Outcome == "transport_error" && e.Error == "boom"
	})).Return(errors.New("redis down")).Once()

	var out bytes.Buffer
	results := NewRunner(client, NewReporter(&out), rec, logger.NewNop()).Run(context.Background(), cases)

	require.Len(t, results, 2)
	client.AssertExpectations(t)
	rec.AssertExpectations(t)
	assert.Contains(t, out.String(), "ERRO ao conectar na API: boom")
}
