package validator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

const maxReturnPathLength = 2048

func init() {
	validate = validator.New()
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func Validate(s any) error {
	return validate.Struct(s)
}

// ValidateStruct runs the struct tags of s and reports every failing field.
func ValidateStruct(s any) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	err := validate.Struct(s)
	if err == nil {
		return result
	}

	result.Valid = false
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		return result
	}
	for _, fe := range verrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed on %q", fe.Tag()),
		})
	}
	return result
}

// ValidateReturnPath accepts only local, absolute paths so a form field can
// never redirect off-site.
func ValidateReturnPath(p string) error {
	if p == "" {
		return fmt.Errorf("return path is required")
	}
	if len(p) > maxReturnPathLength {
		return fmt.Errorf("return path too long (max %d characters)", maxReturnPathLength)
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fmt.Errorf("return path must be a local path")
	}

	u, err := url.Parse(p)
	if err != nil {
		return fmt.Errorf("invalid return path: %w", err)
	}
	if u.Scheme != "" || u.Host != "" {
		return fmt.Errorf("return path must be a local path")
	}
	// Checked again after decoding: browsers read a backslash as a slash.
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, `\`) {
		return fmt.Errorf("return path must be a local path")
	}
	return nil
}

// SanitizeReturnPath returns p as a URL when it is a valid local path and "/"
// otherwise. Callers rebuilding a URL from it must use EscapedPath, not Path.
func SanitizeReturnPath(p string) *url.URL {
	if err := ValidateReturnPath(p); err != nil {
		return &url.URL{Path: "/"}
	}
	u, _ := url.Parse(p)
	u.Fragment = ""
	return u
}
