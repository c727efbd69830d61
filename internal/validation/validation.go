// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package validation checks registration input before it reaches the
// credential store. Checks run in a fixed order and stop at the first
// failure; nothing is remembered between calls.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lockam/lockam/internal/i18n"
)

// Field names reported in FieldError.
const (
	FieldFullName    = "full name"
	FieldEmail       = "email"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldDateOfBirth = "date of birth"
)

const (
	// DefaultMinAgeYears is the minimum age when none is configured.
	DefaultMinAgeYears = 5
	// MinPasswordLength counts runes, not bytes.
	MinPasswordLength = 6
)

var (
	fullNameRe = regexp.MustCompile(`^[A-Za-z0-9 .'-]{3,50}$`)
	emailRe    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)
)

// Fields is the raw registration payload collected by the shell.
type Fields struct {
	FullName    string
	Email       string
	Username    string
	Password    string
	DateOfBirth time.Time
}

// FieldError names the first field that failed and why.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Validator holds the tunable parts of the rules.
type Validator struct {
	MinAgeYears int
	// Now returns the reference date for age checks. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Validator with the given minimum age. Values below zero fall
// back to DefaultMinAgeYears.
func New(minAgeYears int) *Validator {
	if minAgeYears < 0 {
		minAgeYears = DefaultMinAgeYears
	}
	return &Validator{MinAgeYears: minAgeYears, Now: time.Now}
}

// ValidateAll runs every check in order and returns the first *FieldError,
// or nil when the payload is acceptable.
func (v *Validator) ValidateAll(f Fields) error {
	if err := FullName(f.FullName); err != nil {
		return err
	}
	if err := Email(f.Email); err != nil {
		return err
	}
	if err := Username(f.Username); err != nil {
		return err
	}
	if err := Password(f.Password); err != nil {
		return err
	}
	if err := v.DateOfBirth(f.DateOfBirth); err != nil {
		return err
	}
	return nil
}

// Check is ValidateAll in (ok, message) form. message is empty iff ok.
func (v *Validator) Check(f Fields) (bool, string) {
	if err := v.ValidateAll(f); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// FullName accepts 3-50 letters, digits, spaces, periods, apostrophes and
// hyphens after trimming.
func FullName(name string) error {
	if !fullNameRe.MatchString(strings.TrimSpace(name)) {
		return fail(FieldFullName, "validation.fullname_invalid", nil)
	}
	return nil
}

// Email is optional; a non-empty value must look like local@domain.tld.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !emailRe.MatchString(email) {
		return fail(FieldEmail, "validation.email_invalid", nil)
	}
	return nil
}

// Username accepts 3-32 letters, digits, underscores, periods and hyphens.
func Username(username string) error {
	if !usernameRe.MatchString(strings.TrimSpace(username)) {
		return fail(FieldUsername, "validation.username_invalid", nil)
	}
	return nil
}

// Password requires MinPasswordLength runes and no whitespace anywhere.
func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fail(FieldPassword, "validation.password_too_short", map[string]any{"MinLength": MinPasswordLength})
	}
	if strings.ContainsFunc(password, unicode.IsSpace) {
		return fail(FieldPassword, "validation.password_whitespace", nil)
	}
	return nil
}

// DateOfBirth rejects missing and future dates and anyone younger than
// MinAgeYears. Age uses calendar year/month/day comparison.
func (v *Validator) DateOfBirth(dob time.Time) error {
	if dob.IsZero() {
		return fail(FieldDateOfBirth, "validation.dob_required", nil)
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	today := now()
	ty, tm, td := today.Date()
	dy, dm, dd := dob.Date()

	if dy > ty || (dy == ty && (dm > tm || (dm == tm && dd > td))) {
		return fail(FieldDateOfBirth, "validation.dob_future", nil)
	}
	if Age(dob, today) < v.MinAgeYears {
		return fail(FieldDateOfBirth, "validation.dob_too_young", map[string]any{"MinAge": v.MinAgeYears})
	}
	return nil
}

// Age returns completed years between dob and on.
func Age(dob, on time.Time) int {
	ty, tm, td := on.Date()
	dy, dm, dd := dob.Date()
	age := ty - dy
	if tm < dm || (tm == dm && td < dd) {
		age--
	}
	return age
}

func fail(field, messageID string, data map[string]any) *FieldError {
	msg := i18n.T(messageID)
	if data != nil {
		msg = i18n.Tf(messageID, data)
	}
	return &FieldError{Field: field, Message: msg}
}
