// Package validate collects per-field validation failures before any
// store access happens.
package validate

import (
	"regexp"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

type Validator struct {
	errors map[string]string
}

func New() *Validator {
	return &Validator{errors: make(map[string]string)}
}

// Check records msg under key when cond is false. The first failure per
// key wins.
func (v *Validator) Check(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

func (v *Validator) CheckEmail(email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(emailRegexp.MatchString(email), "email", "must be a valid email address")
}

func (v *Validator) CheckPassword(password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 8, "password", "must be at least 8 characters long")
	v.Check(len(password) <= 72, "password", "must be at most 72 characters long")
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) != 0
}

// Err returns a 400 carrying the collected field messages, or nil when
// everything checked out.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.Validation("invalid input", v.errors)
}
