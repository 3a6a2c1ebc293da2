package service

import (
	"strings"

	"github.com/arikankainen/consequat-server/internal/apperr"
)

// fieldRule is one declarative validation rule: a field, a predicate and the
// message to surface when the predicate fails.
type fieldRule struct {
	field   string
	ok      func(string) bool
	message string
}

// validate evaluates every rule before any document is written. All failing
// rules are reported together in a single field-tagged input error.
func validate(values map[string]string, rules []fieldRule) error {
	var messages []string
	invalid := map[string]interface{}{}

	for _, r := range rules {
		if !r.ok(values[r.field]) {
			messages = append(messages, r.message)
			invalid[r.field] = values[r.field]
		}
	}
	if len(messages) > 0 {
		return apperr.NewInputError(strings.Join(messages, ", "), invalid)
	}
	return nil
}

func minLength(n int) func(string) bool {
	return func(v string) bool { return len(v) >= n }
}

func notEmpty(v string) bool { return v != "" }

func validEmail(v string) bool {
	at := strings.Index(v, "@")
	return at > 0 && at < len(v)-1
}

func createUserRules() []fieldRule {
	return []fieldRule{
		{field: "username", ok: minLength(3), message: "username must be at least 3 characters"},
		{field: "password", ok: minLength(5), message: "password must be at least 5 characters"},
		{field: "email", ok: validEmail, message: "email must be valid"},
		{field: "fullname", ok: notEmpty, message: "fullname must not be empty"},
	}
}
