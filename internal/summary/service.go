package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	dom "Planner/internal/domain"
)

const (
	// EmptyMessage is returned for an empty task list; no external call is made.
	EmptyMessage = "You have no tasks. Enjoy your day!"
	// FallbackMessage is returned whenever the external call fails. The
	// endpoint never surfaces that failure to its caller.
	FallbackMessage = "Sorry, I couldn't generate a summary at the moment. Please check your AI configuration."

	systemPrompt = "You are a helpful assistant."

	promptHeader = "You are a helpful assistant. Please provide a brief, friendly, and encouraging summary " +
		"of the following tasks. Mention any overdue tasks first, then tasks due today, " +
		"and finally any upcoming tasks. Keep the summary to a maximum of 3-4 sentences.\n\n" +
		"Here are the tasks:\n"
)

// Service turns a todo list into a natural-language summary via a Generator.
// A nil Generator behaves like a permanently failing one: non-empty lists
// yield the fallback message.
type Service struct {
	gen    Generator
	logger *slog.Logger
}

func NewService(gen Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, logger: logger}
}

// Summarize returns the model's reply for the given todos, or a fixed string:
// EmptyMessage for an empty list, FallbackMessage on any generator failure.
// It never returns an error.
func (s *Service) Summarize(ctx context.Context, todos []dom.Todo) string {
	if len(todos) == 0 {
		return EmptyMessage
	}
	prompt := promptHeader + renderTaskList(todos)

	if s.gen == nil {
		s.logger.Warn("summary generator not configured")
		return FallbackMessage
	}
	reply, err := s.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Error("summary generation failed", "error", err)
		return FallbackMessage
	}
	return strings.TrimSpace(reply)
}

// renderTaskList formats one line per todo:
//
//	- {title} (Due: {YYYY-MM-DD | "No due date"}, Status: {Completed|Pending})
//
// Dates inside the prompt are date-only, unlike the RFC3339 wire format.
func renderTaskList(todos []dom.Todo) string {
	lines := make([]string, len(todos))
	for i, t := range todos {
		due := "No due date"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		status := "Pending"
		if t.Completed {
			status = "Completed"
		}
		lines[i] = fmt.Sprintf("- %s (Due: %s, Status: %s)", t.Title, due, status)
	}
	return strings.Join(lines, "\n")
}
