package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValidation(t *testing.T) {
	valid := []string{
		"ama.owusu@example.com",
		"k.mensah+clinic@hospital.example.com",
		"a_b-c@sub.domain.org",
	}
	for _, email := range valid {
		assert.NoError(t, validateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"no-domain@",
		"no-tld@domain",
		"spaces in@domain.com",
		strings.Repeat("a", 95) + "@example.com", // over 100 chars
	}
	for _, email := range invalid {
		assert.Error(t, validateEmail(email), email)
	}
}

func TestPatientValidate(t *testing.T) {
	p := &Patient{
		FullName:    "Ama Owusu",
		NationalID:  "GHA-1990-001",
		DateOfBirth: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Email:       "ama.owusu@example.com",
	}
	require.NoError(t, p.Validate())

	tooLong := *p
	tooLong.FullName = strings.Repeat("n", 101)
	assert.Error(t, tooLong.Validate())

	futureBirth := *p
	futureBirth.DateOfBirth = time.Now().Add(time.Hour)
	err := futureBirth.Validate()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "date_of_birth", validationErr.Field)
}

func TestSpecialtyIsValid(t *testing.T) {
	assert.True(t, SpecialtyCardiology.IsValid())
	assert.True(t, SpecialtyGeneralMedicine.IsValid())
	assert.False(t, Specialty("ALCHEMY").IsValid())
	assert.False(t, Specialty("").IsValid())
}
