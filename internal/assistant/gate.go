package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"inventra/internal/llm"
	"inventra/internal/memory"
)

// Gate decides whether a query should be answered from inventory data. It
// shapes tone only and is not an authorization check.
type Gate struct {
	gen llm.Generator
	lg  *zap.SugaredLogger
}

func NewGate(gen llm.Generator, lg *zap.SugaredLogger) *Gate {
	return &Gate{gen: gen, lg: lg}
}

// Relevant treats any query following a non-refused answer as a follow-up.
// Otherwise it asks the AI service for YES/NO, failing open on error.
func (g *Gate) Relevant(ctx context.Context, query string, history []memory.Exchange) bool {
	if n := len(history); n > 0 && history[n-1].Bot != Refusal {
		return true
	}
	out, err := g.gen.Generate(ctx, classificationPrompt(query, history))
	if err != nil {
		g.lg.Warnw("relevance check failed, treating query as relevant", "error", err)
		return true
	}
	return strings.EqualFold(strings.TrimSpace(out), "YES")
}
