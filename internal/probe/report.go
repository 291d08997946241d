package probe

import (
	"fmt"
	"io"
)

const (
	bannerStart = "--- Iniciando testes na API de autenticação ---"
	bannerEnd   = "--- Testes finalizados ---"
)

// Reporter renders probe progress as human-readable console text.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Start() {
	fmt.Fprintln(r.w, bannerStart)
}

func (r *Reporter) CaseStart(c Case) {
	fmt.Fprintf(r.w, "\n%s %s\n", c.Label, c.Title)
}

// CaseResult prints the status and body, or the diagnostic that replaces them.
func (r *Reporter) CaseResult(res Result) {
	switch res.Outcome {
	case OutcomeOK:
		pretty, err := res.Pretty()
		if err != nil {
			pretty = string(res.Body)
		}
		fmt.Fprintf(r.w, "Status Code: %d\n", res.StatusCode)
		fmt.Fprintln(r.w, "Resposta JSON recebida:")
		fmt.Fprintln(r.w, pretty)
	case OutcomeDecodeError:
		fmt.Fprintf(r.w, "Status Code: %d\n", res.StatusCode)
		fmt.Fprintf(r.w, "ERRO ao interpretar a resposta JSON: %v\n", res.Err)
	default:
		fmt.Fprintf(r.w, "ERRO ao conectar na API: %v\n", res.Err)
		if res.Case.Hint != "" {
			fmt.Fprintln(r.w, res.Case.Hint)
		}
	}
}

func (r *Reporter) Finish() {
	fmt.Fprintf(r.w, "\n%s\n", bannerEnd)
}
