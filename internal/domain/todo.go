package domain

import "time"

// Todo is the domain entity. Does not depend on Gin, Postgres or Redis.
// Description and DueDate are nullable; nil means "not set".
type Todo struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool
	DueDate     *time.Time

	CreatedAt time.Time
}
