package service

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"

	autherror "github.com/vanjararamdhan/student-crud-api/internal/errors"
	"github.com/vanjararamdhan/student-crud-api/internal/student/dto"
	"github.com/vanjararamdhan/student-crud-api/pkg/constant"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
)

// IsStrongPassword reports whether password satisfies the profile-update
// policy: at least 8 characters, an uppercase letter, a lowercase letter, a
// digit and a symbol, drawn only from the allowed character set.
func IsStrongPassword(password string) bool {
	if len(password) < constant.MinUpdatePasswordLength {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			hasLower = true
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(constant.PasswordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}

	return hasLower && hasUpper && hasDigit && hasSymbol
}

func validateName(name string) error {
	if len(name) < constant.MinNameLength {
		return autherror.ErrNameTooShort
	}
	if !nameRegex.MatchString(name) {
		return autherror.InvalidField("Name must only contain alphabets")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return autherror.InvalidField("Phone number must contain exactly 10 digits")
	}
	return nil
}

// parseDOB accepts a date-only or RFC 3339 value and enforces the minimum age.
func parseDOB(value string) (time.Time, error) {
	dob, err := time.Parse("2006-01-02", value)
	if err != nil {
		dob, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return time.Time{}, autherror.InvalidField("Date of birth must be a valid date")
	}

	if dob.After(time.Now().AddDate(-constant.MinStudentAgeYears, 0, 0)) {
		return time.Time{}, autherror.InvalidField("Student must be at least 10 years old")
	}

	return dob, nil
}

func validateSubjects(subjects []dto.Subject) error {
	for _, sub := range subjects {
		if !slices.Contains(constant.AllowedSubjects, sub.SubjectName) {
			return autherror.InvalidField("Unknown subject: " + sub.SubjectName)
		}
		if sub.Marks < 0 || sub.Marks > 100 {
			return autherror.InvalidField("Marks must be between 0 and 100")
		}
	}
	return nil
}
