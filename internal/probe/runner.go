package probe

import (
	"context"
	"time"

	"auwalk/internal/history"
	"auwalk/pkg/logger"
)

// LoginClient performs one login attempt.
type LoginClient interface {
	Login(ctx context.Context, creds Credentials) Result
}

// Runner drives cases one after another. A failed case never stops the next.
type Runner struct {
	client   LoginClient
	reporter *Reporter
	recorder history.Recorder
	logger   logger.Logger
}

func NewRunner(client LoginClient, reporter *Reporter, recorder history.Recorder, log logger.Logger) *Runner {
	if recorder == nil {
		recorder = history.NewNop()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{
		client:   client,
		reporter: reporter,
		recorder: recorder,
		logger:   log,
	}
}

// Run executes cases in order, reports each as it completes and returns the
// results in the same order.
func (r *Runner) Run(ctx context.Context, cases []Case) []Result {
	r.reporter.Start()

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		r.reporter.CaseStart(c)

		res := r.client.Login(ctx, c.Credentials)
		res.Case = c

		r.observe(ctx, res)
		r.reporter.CaseResult(res)
		results = append(results, res)
	}

	r.reporter.Finish()
	return results
}

func (r *Runner) observe(ctx context.Context, res Result) {
	fields := map[string]interface{}{
		"case":        res.Case.Label,
		"outcome":     string(res.Outcome),
		"status_code": res.StatusCode,
		"request_id":  res.RequestID,
		"duration_ms": res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		fields["error"] = res.Err.Error()
		r.logger.Warn("login probe failed", fields)
	} else {
		r.logger.Info("login probe completed", fields)
	}

	if res.Outcome == OutcomeOK {
		info, err := InspectToken(res.Body)
		switch {
		case err != nil:
			r.logger.Debug("login token not decodable", map[string]interface{}{
				"case":  res.Case.Label,
				"error": err.Error(),
			})
		case info != nil:
			r.logger.Info("login token issued", map[string]interface{}{
				"case":       res.Case.Label,
				"subject":    info.Subject,
				"expires_at": info.ExpiresAt.UTC().Format(time.RFC3339),
			})
		}
	}

	entry := history.Entry{
		Case:       res.Case.Label,
		Email:      res.Case.Credentials.Email,
		Outcome:    string(res.Outcome),
		StatusCode: res.StatusCode,
		RequestID:  res.RequestID,
		DurationMs: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
	}
	if err := r.recorder.Record(ctx, entry); err != nil {
		r.logger.Warn("failed to record probe history", map[string]interface{}{"error": err.Error()})
	}
}
