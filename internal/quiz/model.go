package quiz

import (
	"time"

	"github.com/google/uuid"
)

// ValidOption reports whether s names one of the four answer slots.
func ValidOption(s string) bool {
	switch s {
	case "a", "b", "c", "d":
		return true
	}
	return false
}

type Quiz struct {
	ID            uuid.UUID
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string // "a", "b", "c" or "d"
	CreatedAt     time.Time
}

// Update carries a partial quiz mutation; nil fields are left untouched.
type Update struct {
	Question      *string
	OptionA       *string
	OptionB       *string
	OptionC       *string
	OptionD       *string
	CorrectOption *string
}
