package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eshop-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func writeKnowledge(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eshop_knowledge.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReply_HappyPath_GroundsPrompt(t *testing.T) {
	path := writeKnowledge(t, "E-Shop ships across India within 3 days.")
	g := &mockGenerator{}
	g.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "E-Shop ships across India within 3 days.") &&
			strings.Contains(prompt, "User: where is my order?")
	})).Return("It usually arrives within 3 days.", nil)

	reply := NewService(g, path).Reply(context.Background(), "where is my order?")

	assert.Equal(t, "It usually arrives within 3 days.", reply)
	g.AssertExpectations(t)
}

func TestReply_KnowledgeFileMissing(t *testing.T) {
	g := &mockGenerator{}

	reply := NewService(g, filepath.Join(t.TempDir(), "missing.txt")).Reply(context.Background(), "hi")

	assert.Equal(t, setupIncompleteReply, reply)
	// Never reaches the generation endpoint without grounding.
	g.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
}

func TestReply_NoCandidates_Fallback(t *testing.T) {
	path := writeKnowledge(t, "facts")
	g := &mockGenerator{}
	g.On("GenerateContent", mock.Anything, mock.Anything).Return("", domain.ErrNoCandidates)

	reply := NewService(g, path).Reply(context.Background(), "hi")
	assert.Equal(t, badResponseReply, reply)
}

func TestReply_UpstreamUnavailable_Fallback(t *testing.T) {
	path := writeKnowledge(t, "facts")
	g := &mockGenerator{}
	g.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: timeout"))

	reply := NewService(g, path).Reply(context.Background(), "hi")
	assert.Equal(t, unavailableReply, reply)
}

func TestReply_WrappedUnavailable_Fallback(t *testing.T) {
	path := writeKnowledge(t, "facts")
	g := &mockGenerator{}
	g.On("GenerateContent", mock.Anything, mock.Anything).Return("", domain.ErrUnavailable)

	reply := NewService(g, path).Reply(context.Background(), "hi")
	assert.Equal(t, unavailableReply, reply)
}
