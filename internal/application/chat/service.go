// Package chat grounds a free-form user message with the static knowledge
// document and relays it to the generation endpoint. Every failure degrades to
// a fixed reply; nothing propagates past the service boundary.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/eshop-relay/internal/domain"
)

// Fixed replies for the degraded paths.
const (
	setupIncompleteReply = "Setup incomplete. Knowledge file missing."
	badResponseReply     = "The assistant did not respond properly. Please try again."
	unavailableReply     = "Sorry, the assistant is currently unavailable."
)

const promptTemplate = `You are a helpful AI assistant for an Indian e-commerce website called E-Shop.

Here is the latest info about E-Shop:
%s

User: %s
Bot:`

// Generator produces a single text reply for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Service interface {
	Reply(ctx context.Context, message string) string
}

type service struct {
	generator     Generator
	knowledgePath string
}

func NewService(generator Generator, knowledgePath string) Service {
	return &service{generator: generator, knowledgePath: knowledgePath}
}

// Reply composes the grounded prompt and forwards it. The knowledge document
// is re-read on every request so edits take effect without a restart.
func (s *service) Reply(ctx context.Context, message string) string {
	knowledge, err := os.ReadFile(s.knowledgePath)
	if err != nil {
		slog.Warn("knowledge document unavailable", "path", s.knowledgePath, "err", err)
		return setupIncompleteReply
	}

	prompt := fmt.Sprintf(promptTemplate, string(knowledge), message)
	reply, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		slog.Warn("generation call failed", "err", err)
		if errors.Is(err, domain.ErrNoCandidates) {
			return badResponseReply
		}
		return unavailableReply
	}
	return reply
}
