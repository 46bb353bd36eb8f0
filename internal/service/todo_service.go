package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Planner/internal/cache"
	dom "Planner/internal/domain"
	"Planner/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// CreateInput carries the validated fields for a new todo.
type CreateInput struct {
	Title       string
	Description *string
	Completed   bool
	DueDate     *time.Time
}

// UpdateInput carries a merge patch. Absent fields keep their stored values.
// Description and DueDate are nullable, so a bare pointer cannot distinguish
// "leave alone" from "clear"; the Set flags carry that bit.
type UpdateInput struct {
	Title          *string
	Description    *string
	SetDescription bool
	Completed      *bool
	DueDate        *time.Time
	SetDueDate     bool
}

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, in CreateInput) (dom.Todo, error) {
	in.Title = strings.TrimSpace(in.Title)

	t, err := s.repo.Create(ctx, dom.Todo{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			if list == nil {
				list = []dom.Todo{}
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update applies a merge patch: only the fields present in the input change,
// everything else keeps its stored value. Concurrent updates to the same id
// are last-writer-wins.
func (s *TodoService) Update(ctx context.Context, id int64, in UpdateInput) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	patch := existing
	if in.Title != nil {
		patch.Title = strings.TrimSpace(*in.Title)
	}
	if in.SetDescription {
		patch.Description = in.Description
	}
	if in.Completed != nil {
		patch.Completed = *in.Completed
	}
	if in.SetDueDate {
		patch.DueDate = in.DueDate
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete removes the todo and returns the record as it was before deletion.
func (s *TodoService) Delete(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
