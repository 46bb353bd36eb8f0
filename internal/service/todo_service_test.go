package service

import (
	"context"
	"sync"
	"testing"
	"time"

	dom "Planner/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory TodoRepo. Missing ids yield pgx.ErrNoRows,
// matching the Postgres implementation.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]dom.Todo
	order  []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{todos: make(map[int64]dom.Todo)}
}

func (r *fakeRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	r.todos[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeRepo) List(_ context.Context) ([]dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []dom.Todo
	for _, id := range r.order {
		if t, ok := r.todos[id]; ok {
			list = append(list, t)
		}
	}
	return list, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	patch.ID = existing.ID
	patch.CreatedAt = existing.CreatedAt
	r.todos[id] = patch
	return patch, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	delete(r.todos, id)
	return t, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateAssignsIDAndTrimsTitle(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	got, err := svc.Create(context.Background(), CreateInput{Title: "  Buy milk  "})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
	assert.False(t, got.Completed)
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePartialPreservesUntouchedFields(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	due := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), CreateInput{
		Title:       "Buy milk",
		Description: strPtr("two liters"),
		DueDate:     &due,
	})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), created.ID, UpdateInput{
		Completed: boolPtr(true),
	})
	require.NoError(t, err)

	assert.True(t, got.Completed)
	assert.Equal(t, "Buy milk", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "two liters", *got.Description)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestUpdateClearsNullableFields(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	due := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), CreateInput{
		Title:       "Buy milk",
		Description: strPtr("two liters"),
		DueDate:     &due,
	})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), created.ID, UpdateInput{
		SetDescription: true,
		SetDueDate:     true,
	})
	require.NoError(t, err)

	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "Buy milk", got.Title)
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	_, err := svc.Update(context.Background(), 42, UpdateInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReturnsRecordThenNotFound(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	created, err := svc.Create(context.Background(), CreateInput{Title: "Buy milk"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	// Absence is idempotent: deleting again is still a clean not-found.
	_, err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReflectsWrites(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(newFakeRepo(), nil)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, CreateInput{Title: title})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	_, err = svc.Delete(ctx, list[0].ID)
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
