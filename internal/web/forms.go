package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// TaskForm holds the submitted fields of the task create/update form.
type TaskForm struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=10000"`
	Done        bool
}

// FieldErrors maps form field names to user-facing validation messages.
type FieldErrors map[string]string

// ParseTaskForm decodes the task form from an
// application/x-www-form-urlencoded request body. Surrounding whitespace is
// stripped from text fields, so a whitespace-only title fails the required
// check.
// Returns an error only when the body itself cannot be parsed; validation
// is a separate step via ValidateTaskForm.
func ParseTaskForm(r *http.Request) (TaskForm, error) {
	if err := r.ParseForm(); err != nil {
		return TaskForm{}, fmt.Errorf("failed to parse form: %w", err)
	}

	return TaskForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		// Unchecked checkboxes are absent from the form body
		Done: r.PostFormValue("done") != "",
	}, nil
}

// ValidateTaskForm validates the form against its struct tags and maps any
// violations to per-field, user-facing messages. A nil map means the form
// is valid.
func ValidateTaskForm(form TaskForm) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrors := make(FieldErrors)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// validator.Struct only fails this way on a non-struct argument
		fieldErrors["form"] = "Invalid form submission"
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		switch fieldError.Field() {
		case "Title":
			fieldErrors["title"] = titleErrorMessage(fieldError)
		case "Description":
			fieldErrors["description"] = "Description is too long"
		default:
			fieldErrors["form"] = "Invalid form submission"
		}
	}

	return fieldErrors
}

// titleErrorMessage maps validation tags on the title field to user-friendly messages.
func titleErrorMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "Title is required"
	case "max":
		return fmt.Sprintf("Title must be at most %s characters", fieldError.Param())
	default:
		return "Title is invalid"
	}
}
