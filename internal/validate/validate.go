// Package validate holds the per-entity field validation rules. Each validator
// returns the full list of violated fields rather than stopping at the first.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

func Signup(name, email, password string) FieldErrors {
	var fe FieldErrors
	if name == "" {
		fe = append(fe, FieldError{"name", "name is required"})
	}
	if email == "" {
		fe = append(fe, FieldError{"email", "email is required"})
	} else if !ValidEmail(email) {
		fe = append(fe, FieldError{"email", "please fill a valid email address"})
	}
	if password == "" {
		fe = append(fe, FieldError{"password", "password is required"})
	}
	return fe
}

func Customer(name, email, phone, address string) FieldErrors {
	var fe FieldErrors
	if len(name) < 2 {
		fe = append(fe, FieldError{"name", "name must be at least 2 characters"})
	}
	if email == "" {
		fe = append(fe, FieldError{"email", "email is required"})
	} else if !ValidEmail(email) {
		fe = append(fe, FieldError{"email", "please fill a valid email address"})
	}
	if len(phone) < 10 {
		fe = append(fe, FieldError{"phone", "phone number must be at least 10 digits"})
	}
	if len(address) < 5 {
		fe = append(fe, FieldError{"address", "address must be at least 5 characters"})
	}
	return fe
}

func Item(name string, price float64) FieldErrors {
	var fe FieldErrors
	if len(name) < 2 {
		fe = append(fe, FieldError{"name", "item name must be at least 2 characters"})
	}
	if price <= 0 {
		fe = append(fe, FieldError{"price", "item price must be positive"})
	}
	return fe
}
