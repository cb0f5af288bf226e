// Package assistant answers free-text questions about a caller's inventory
// using the AI text service and a short conversation window.
package assistant

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/llm"
	"inventra/internal/memory"
	"inventra/internal/models"
	"inventra/internal/services/product"
)

// ProductLister returns a snapshot of an owner's products.
type ProductLister interface {
	List(ctx context.Context, ownerID string, f product.Filter) ([]models.Product, error)
}

type Responder struct {
	products ProductLister
	memory   *memory.Store
	gate     *Gate
	gen      llm.Generator
	lg       *zap.SugaredLogger
}

func NewResponder(products ProductLister, mem *memory.Store, gen llm.Generator, lg *zap.SugaredLogger) *Responder {
	return &Responder{products: products, memory: mem, gate: NewGate(gen, lg), gen: gen, lg: lg}
}

// Ask runs one query for userID. Queries from the same user are handled
// one at a time so every exchange lands in the window.
func (r *Responder) Ask(ctx context.Context, userID, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", apperr.Validation(apperr.MsgPromptRequired)
	}
	if userID == "" {
		return "", apperr.Validation("User ID is required")
	}

	conv, err := r.memory.Acquire(ctx, userID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer conv.Release()
	history := conv.History()

	if !r.gate.Relevant(ctx, query, history) {
		conv.Append(query, Refusal)
		return Refusal, nil
	}

	products, err := r.products.List(ctx, userID, product.Filter{})
	if err != nil {
		return "", err
	}
	text, err := r.gen.Generate(ctx, answerPrompt(query, InventorySummary(products), history))
	if err != nil {
		return "", r.generationError(userID, err)
	}
	answer := strings.TrimSpace(text)
	conv.Append(query, answer)
	return answer, nil
}

func (r *Responder) generationError(userID string, err error) error {
	r.lg.Errorw("ai query failed", "user_id", userID, "error", err)
	switch {
	case errors.Is(err, llm.ErrQuota):
		return apperr.Unavailable(apperr.MsgAIQuota, err)
	case errors.Is(err, llm.ErrNotConfigured):
		return apperr.Misconfigured(apperr.MsgAIConfig, err)
	}
	return &apperr.Error{Kind: apperr.KindInternal, Message: apperr.MsgAIFailed, Cause: err}
}
