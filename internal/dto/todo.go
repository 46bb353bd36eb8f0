package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC. JSON null yields a nil value.
type DueDate struct{ t *time.Time }

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// If it was date-only (no time component), use start of day UTC
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

// OptionalString is a tri-state JSON field: absent, explicit null, or a string value.
// Absent fields are skipped by a partial update; null and value are applied.
type OptionalString struct {
	set   bool
	value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	return json.Unmarshal(data, &o.value)
}

// Set reports whether the field appeared in the JSON body at all.
func (o OptionalString) Set() bool { return o.set }

// Null reports whether the field was an explicit JSON null.
func (o OptionalString) Null() bool { return o.set && o.value == nil }

// Ptr returns the value, nil for null or absent.
func (o OptionalString) Ptr() *string { return o.value }

// OptionalBool is the tri-state counterpart for boolean fields.
type OptionalBool struct {
	set   bool
	value *bool
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	o.set = true
	return json.Unmarshal(data, &o.value)
}

func (o OptionalBool) Set() bool  { return o.set }
func (o OptionalBool) Null() bool { return o.set && o.value == nil }
func (o OptionalBool) Ptr() *bool { return o.value }

// OptionalDueDate is the tri-state counterpart for due_date.
// Null is a valid value here: it clears the stored due date.
type OptionalDueDate struct {
	set   bool
	value DueDate
}

func (o *OptionalDueDate) UnmarshalJSON(data []byte) error {
	o.set = true
	return json.Unmarshal(data, &o.value)
}

func (o OptionalDueDate) Set() bool       { return o.set }
func (o OptionalDueDate) Ptr() *time.Time { return o.value.Ptr() }

// CreateTodoRequest is the JSON body for POST /todos. Completed is tri-state
// so an explicit null can be told apart from false and rejected.
type CreateTodoRequest struct {
	Title       string       `json:"title" binding:"required,min=1,max=200"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
	Completed   OptionalBool `json:"completed"`
	DueDate     DueDate      `json:"due_date"` // optional: "2026-02-19" or RFC3339
}

// Validate enforces the constraints JSON decoding alone cannot express:
// title must carry non-whitespace text, completed may not be null.
func (r CreateTodoRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title: must not be empty")
	}
	if r.Completed.Null() {
		return fmt.Errorf("completed: must be a boolean")
	}
	return nil
}

// CompletedValue returns the completion flag, false when absent.
func (r CreateTodoRequest) CompletedValue() bool {
	if v := r.Completed.Ptr(); v != nil {
		return *v
	}
	return false
}

// UpdateTodoRequest is the JSON body for PUT /todos/{id}. Every field is
// optional; fields absent from the body keep their stored values.
type UpdateTodoRequest struct {
	Title       OptionalString  `json:"title"`
	Description OptionalString  `json:"description"`
	Completed   OptionalBool    `json:"completed"`
	DueDate     OptionalDueDate `json:"due_date"`
}

// Validate enforces the constraints JSON decoding alone cannot express:
// title may be updated but never to null or blank, completed may not be null.
func (r UpdateTodoRequest) Validate() error {
	if r.Title.Null() {
		return fmt.Errorf("title: must not be null")
	}
	if r.Title.Set() && strings.TrimSpace(*r.Title.Ptr()) == "" {
		return fmt.Errorf("title: must not be empty")
	}
	if r.Completed.Null() {
		return fmt.Errorf("completed: must be a boolean")
	}
	return nil
}

type TodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
}
