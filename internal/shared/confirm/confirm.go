// Package confirm models the confirmation step in front of destructive operations
// so the core stays headless.
package confirm

import "context"

// Confirmer decides whether a destructive action may proceed.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Func adapts a function into a Confirmer.
type Func func(ctx context.Context, prompt string) bool

func (f Func) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

var (
	// Always approves every prompt. Used for programmatic callers.
	Always Confirmer = Func(func(context.Context, string) bool { return true })
	// Never declines every prompt.
	Never Confirmer = Func(func(context.Context, string) bool { return false })
)

// Approved reports whether the action may proceed. A nil confirmer means no prompt is required.
func Approved(ctx context.Context, c Confirmer, prompt string) bool {
	if c == nil {
		return true
	}
	return c.Confirm(ctx, prompt)
}
