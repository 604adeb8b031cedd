// Package validation implements ordered sanitize-and-check chains for request
// fields. Each field runs its rules in order: sanitizers rewrite the value,
// checks stop the field's chain on first failure. Errors accumulate across
// fields, and all field-level validation completes before any semantic check
// (uniqueness, ownership) runs.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mkweon/wordvault-backend/internal/textnorm"
)

// FieldError is one failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule transforms or checks a single field value. The returned message is
// empty when the rule passes; a non-empty message fails the field and stops
// its chain.
type Rule func(value string) (sanitized string, message string)

// apply runs the chain for one field, appending at most one error.
// It returns the sanitized value as of the last rule that ran.
func apply(field, value string, errs *[]FieldError, rules ...Rule) string {
	v := value
	for _, rule := range rules {
		var msg string
		v, msg = rule(v)
		if msg != "" {
			*errs = append(*errs, FieldError{Field: field, Message: msg})
			break
		}
	}
	return v
}

// Sanitizers

func trim() Rule {
	return func(v string) (string, string) { return strings.TrimSpace(v), "" }
}

func collapseSpaces() Rule {
	return func(v string) (string, string) { return textnorm.CollapseSpaces(v), "" }
}

func toLower() Rule {
	return func(v string) (string, string) { return strings.ToLower(v), "" }
}

func toUpper() Rule {
	return func(v string) (string, string) { return strings.ToUpper(v), "" }
}

func properNoun() Rule {
	return func(v string) (string, string) { return textnorm.ProperNoun(v), "" }
}

// Checks

func notEmpty(msg string) Rule {
	return func(v string) (string, string) {
		if v == "" {
			return v, msg
		}
		return v, ""
	}
}

func alpha(msg string) Rule {
	return func(v string) (string, string) {
		for _, r := range v {
			if !unicode.IsLetter(r) {
				return v, msg
			}
		}
		return v, ""
	}
}

func matches(re *regexp.Regexp, msg string) Rule {
	return func(v string) (string, string) {
		if !re.MatchString(v) {
			return v, msg
		}
		return v, ""
	}
}

func lengthBetween(min, max int, msg string) Rule {
	return func(v string) (string, string) {
		n := utf8.RuneCountInString(v)
		if n < min || n > max {
			return v, msg
		}
		return v, ""
	}
}

func email(msg string) Rule {
	return func(v string) (string, string) {
		if _, err := mail.ParseAddress(v); err != nil {
			return v, msg
		}
		return v, ""
	}
}

func oneOf(values []string, msg string) Rule {
	return func(v string) (string, string) {
		for _, candidate := range values {
			if v == candidate {
				return v, ""
			}
		}
		return v, msg
	}
}
