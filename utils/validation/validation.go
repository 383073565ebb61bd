package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/123AnkitSharma/Taskify/models"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MinPasswordLength    = 8
	MinNameLength        = 2
	MaxNameLength        = 50
)

// Accepted due date layouts. Clients send date-only values from the form;
// RFC3339 is accepted for round-tripped task payloads.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

var (
	emailRegex  = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	digitRegex  = regexp.MustCompile(`\d`)
)

// ParseDueDate parses a due date string in any accepted layout
func ParseDueDate(value string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateTaskPayload checks task fields against their constraints and returns
// a field -> message map; an empty map means the payload is valid. With partial
// set, absent fields are unconstrained (update semantics); otherwise title is
// required (create semantics). Due dates are checked for format only - the
// server deliberately places no past-date constraint on create or update.
func ValidateTaskPayload(payload map[string]interface{}, partial bool) map[string]string {
	errors := make(map[string]string)

	rawTitle, titlePresent := payload["title"]
	if titlePresent || !partial {
		title, ok := rawTitle.(string)
		if titlePresent && !ok {
			errors["title"] = "Task title must be a string"
		} else {
			trimmed := strings.TrimSpace(title)
			if trimmed == "" {
				errors["title"] = "Task title is required"
			} else if utf8.RuneCountInString(trimmed) > MaxTitleLength {
				errors["title"] = "Task title cannot exceed 100 characters"
			}
		}
	}

	if rawDescription, present := payload["description"]; present && rawDescription != nil {
		description, ok := rawDescription.(string)
		if !ok {
			errors["description"] = "Description must be a string"
		} else if utf8.RuneCountInString(strings.TrimSpace(description)) > MaxDescriptionLength {
			errors["description"] = "Description cannot exceed 500 characters"
		}
	}

	if rawPriority, present := payload["priority"]; present && rawPriority != nil {
		priority, ok := rawPriority.(string)
		if !ok {
			errors["priority"] = "Priority must be Low, Medium, or High"
		} else if priority != "" {
			if _, err := models.PriorityFromString(priority); err != nil {
				errors["priority"] = "Priority must be Low, Medium, or High"
			}
		}
	}

	// An explicit null (or empty string) is the clear-the-date signal, so only
	// those and well-formed date strings pass; any other type is rejected.
	if rawDueDate, present := payload["due_date"]; present && rawDueDate != nil {
		dueDate, ok := rawDueDate.(string)
		if !ok {
			errors["due_date"] = "Invalid due date format"
		} else if dueDate != "" {
			if _, ok := ParseDueDate(dueDate); !ok {
				errors["due_date"] = "Invalid due date format"
			}
		}
	}

	if completed, present := payload["completed"]; present {
		if _, ok := completed.(bool); !ok {
			errors["completed"] = "Completed must be a boolean"
		}
	}

	return errors
}

// IsValidEmail reports whether the string looks like an email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength and returns the list of violations
func ValidatePassword(password string) []string {
	var errors []string

	if len(password) < MinPasswordLength {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if !letterRegex.MatchString(password) {
		errors = append(errors, "Password must contain at least one letter")
	}
	if !digitRegex.MatchString(password) {
		errors = append(errors, "Password must contain at least one number")
	}

	return errors
}

// ValidateRegistration checks a registration payload and returns field errors
func ValidateRegistration(name, email, password string) map[string]string {
	errors := make(map[string]string)

	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 {
		errors["name"] = "Name is required"
	} else if len(trimmedName) < MinNameLength {
		errors["name"] = "Name must be at least 2 characters long"
	} else if len(trimmedName) > MaxNameLength {
		errors["name"] = "Name cannot exceed 50 characters"
	}

	if strings.TrimSpace(email) == "" {
		errors["email"] = "Email is required"
	} else if !IsValidEmail(email) {
		errors["email"] = "Please enter a valid email address"
	}

	if password == "" {
		errors["password"] = "Password is required"
	} else if violations := ValidatePassword(password); len(violations) > 0 {
		errors["password"] = violations[0]
	}

	return errors
}
