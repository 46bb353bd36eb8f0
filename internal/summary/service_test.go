package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"Planner/internal/config"
	dom "Planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records calls and returns a canned reply or error.
type stubGenerator struct {
	calls  int
	system string
	user   string
	reply  string
	err    error
}

func (g *stubGenerator) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	g.calls++
	g.system = systemPrompt
	g.user = userPrompt
	return g.reply, g.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestSummarizeEmptyListSkipsGenerator(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "should not be used"}
	svc := NewService(gen, quietLogger())

	got := svc.Summarize(context.Background(), nil)

	assert.Equal(t, "You have no tasks. Enjoy your day!", got)
	assert.Zero(t, gen.calls, "empty list must not reach the external service")
}

func TestSummarizeReturnsTrimmedReply(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "  You have one task left. Keep going!\n"}
	svc := NewService(gen, quietLogger())

	got := svc.Summarize(context.Background(), []dom.Todo{{Title: "Buy milk"}})

	assert.Equal(t, "You have one task left. Keep going!", got)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "You are a helpful assistant.", gen.system)
}

func TestSummarizePromptFormat(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 2, 19, 15, 30, 0, 0, time.UTC)
	todos := []dom.Todo{
		{Title: "Buy milk", DueDate: &due},
		{Title: "Ship release", Completed: true, Description: strPtr("v2 rollout")},
	}
	gen := &stubGenerator{reply: "ok"}
	svc := NewService(gen, quietLogger())

	svc.Summarize(context.Background(), todos)

	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.user, "- Buy milk (Due: 2026-02-19, Status: Pending)")
	assert.Contains(t, gen.user, "- Ship release (Due: No due date, Status: Completed)")
	assert.Contains(t, gen.user, "Here are the tasks:\n")
	assert.Contains(t, gen.user, "Mention any overdue tasks first")
	assert.True(t, strings.HasPrefix(gen.user, "You are a helpful assistant."))
}

func TestSummarizeFallbackOnGeneratorError(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{err: errors.New("boom")}
	svc := NewService(gen, quietLogger())

	got := svc.Summarize(context.Background(), []dom.Todo{{Title: "Buy milk"}})

	assert.Equal(t,
		"Sorry, I couldn't generate a summary at the moment. Please check your AI configuration.",
		got)
}

func TestSummarizeFallbackWithoutGenerator(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, quietLogger())

	got := svc.Summarize(context.Background(), []dom.Todo{{Title: "Buy milk"}})

	assert.Equal(t, FallbackMessage, got)
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewOpenAIGenerator(config.AIConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
