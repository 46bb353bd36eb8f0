package repo

import (
	"context"

	dom "Planner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id int64) (dom.Todo, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description, completed, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, completed, due_date, created_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.Completed, t.DueDate).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.DueDate, &out.CreatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, description, completed, due_date, created_at
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.CreatedAt,
	)
	return t, err
}

func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `
		SELECT id, title, description, completed, due_date, created_at
		FROM todos ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate,
			&t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, description = $3, completed = $4, due_date = $5
		WHERE id = $1
		RETURNING id, title, description, completed, due_date, created_at`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id, patch.Title, patch.Description, patch.Completed, patch.DueDate).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.CreatedAt,
	)
	return t, err
}

// Delete removes the row and returns it as it was just before deletion.
// pgx.ErrNoRows if the id does not exist.
func (r *PGTodoRepo) Delete(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		DELETE FROM todos WHERE id = $1
		RETURNING id, title, description, completed, due_date, created_at`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.CreatedAt,
	)
	return t, err
}
