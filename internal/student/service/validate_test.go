package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/vanjararamdhan/student-crud-api/internal/errors"
	"github.com/vanjararamdhan/student-crud-api/internal/student/dto"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes present", "Passw0rd!", true},
		{"minimum length boundary", "Aa1@aaaa", true},
		{"too short", "Aa1@aaa", false},
		{"no uppercase or symbol", "password1", false},
		{"no digit", "Password!", false},
		{"no lowercase", "PASSWORD1!", false},
		{"no symbol", "Password1", false},
		{"disallowed character", "Passw0rd!#", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validateName("Ram Dhan"))

	err := validateName("Ab")
	assert.Equal(t, autherror.ErrNameTooShort, err)

	err = validateName("R2D2")
	require.Error(t, err)
	var apiErr *autherror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 115, apiErr.Code)
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, validatePhone("9876543210"))
	assert.Error(t, validatePhone("12345"))
	assert.Error(t, validatePhone("98765432100"))
	assert.Error(t, validatePhone("98765abc10"))
	assert.Error(t, validatePhone(""))
}

func TestParseDOB(t *testing.T) {
	dob, err := parseDOB("2005-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2005, dob.Year())

	_, err = parseDOB("not-a-date")
	assert.Error(t, err)

	// Younger than the minimum age
	tooYoung := time.Now().AddDate(-5, 0, 0).Format("2006-01-02")
	_, err = parseDOB(tooYoung)
	assert.Error(t, err)
}

func TestValidateSubjects(t *testing.T) {
	assert.NoError(t, validateSubjects(nil))
	assert.NoError(t, validateSubjects([]dto.Subject{
		{SubjectName: "Maths", Marks: 95},
		{SubjectName: "English", Marks: 0},
	}))

	assert.Error(t, validateSubjects([]dto.Subject{{SubjectName: "History", Marks: 50}}))
	assert.Error(t, validateSubjects([]dto.Subject{{SubjectName: "Maths", Marks: 101}}))
	assert.Error(t, validateSubjects([]dto.Subject{{SubjectName: "Maths", Marks: -1}}))
}
