package composer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

// generation wraps the optional generative backend. A nil *generation, or one without a
// backend, always returns the template.
type generation struct {
	backend domain.Generator
	timeout time.Duration
}

func (g *generation) reply(ctx context.Context, in *Input, template string) string {
	if g == nil || g.backend == nil {
		return template
	}

	log := observability.LoggerFromContext(ctx).With("session_id", in.SessionID)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.call(ctx, in)
	switch {
	case err != nil:
		log.Warnw("generative backend failed, using template", "error", err)
		return template
	case strings.TrimSpace(text) == "":
		log.Warnw("generative backend returned empty reply, using template")
		return template
	}
	return text
}

// call runs the backend in its own goroutine so a backend that ignores ctx still cannot
// hold the reply past the timeout.
func (g *generation) call(ctx context.Context, in *Input) (string, error) {
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("generative backend panicked: %v", r)}
			}
		}()
		text, err := g.backend.GenerateReply(ctx, in.Message, domain.PromptContext{
			SessionID: in.SessionID,
			Emotion:   in.Classification.Emotion,
			Intent:    in.Classification.Intent,
			Topic:     in.Context.MainTopic,
			History:   in.History,
		})
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
