package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kunal/vetta/internal/store"
)

// audited wraps a Provider so every call lands in the llm_events table
// with its purpose tag, latency, and token counts.
type audited struct {
	inner Provider
	repo  store.EventRepo
}

// WithLogging adds event recording to a Provider.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &audited{inner: p, repo: repo}
}

func (a *audited) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := a.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    a.inner.ModelID(),
		Model:       a.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// A failed write must not fail the interview turn.
	if logErr := a.repo.AppendLLMRequest(ctx, ev); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (a *audited) ModelID() string { return a.inner.ModelID() }

// renderRequest flattens the prompt into the readable form shown by
// "vetta llm view".
func renderRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
