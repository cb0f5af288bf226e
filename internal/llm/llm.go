// Package llm adapts the generative-AI text service behind a single-call
// interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuota marks quota, rate-limit and overload failures.
	ErrQuota = errors.New("ai quota exceeded")
	// ErrNotConfigured marks a missing or rejected API key.
	ErrNotConfigured = errors.New("ai service not configured")
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classify tags err with ErrQuota or ErrNotConfigured when its text says so;
// other errors are returned as-is.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrQuota) || errors.Is(err, ErrNotConfigured) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key"), strings.Contains(msg, "api key"), strings.Contains(msg, "permission_denied"):
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"), strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", ErrQuota, err)
	}
	return err
}

// Disabled is used when no API key is configured. Every call fails with
// ErrNotConfigured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
