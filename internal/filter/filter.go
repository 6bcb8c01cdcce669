// Package filter narrows a todo list by completion status and a free-text
// query. It is pure and shared by the API and the terminal client.
package filter

import (
	"strings"

	"github.com/Varun5711/taskmate/internal/models"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// ParseStatus maps user input to a Status; anything unrecognised is StatusAll.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted
	case StatusPending:
		return StatusPending
	default:
		return StatusAll
	}
}

// Next cycles all -> completed -> pending -> all.
func (s Status) Next() Status {
	switch s {
	case StatusAll:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	default:
		return StatusAll
	}
}

func (s Status) matches(t models.Todo) bool {
	switch s {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

type Criteria struct {
	Status Status
	Query  string
}

func (c Criteria) IsZero() bool {
	return ParseStatus(string(c.Status)) == StatusAll && c.Query == ""
}

// Apply returns the todos matching both the status and the query, in their
// original order. The query is lower-cased but otherwise matched as typed.
// The input slice is not modified.
func Apply(todos []models.Todo, c Criteria) []models.Todo {
	status := ParseStatus(string(c.Status))
	query := strings.ToLower(c.Query)

	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if !status.matches(t) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}
