package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

func TestValidateStructReportsJSONPaths(t *testing.T) {
	v := NewValidator()
	req := CreateLecturerRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org", Phone: "+44 20 1234",
		Type: "internal", CourseLevelPreference: "master",
		Qualifications: []QualificationInput{{CourseID: courseA, Experience: "expert", LeadTime: "short"}},
	}
	err := validateStruct(v, req, "invalid lecturer payload")
	require.ErrorIs(t, err, appErrors.ErrValidation)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "invalid lecturer payload", appErr.Message)
	assert.Equal(t, FieldErrors{"qualifications[0].experience": "must be one of: none, other_uni, provadis"}, appErr.Details)
}

func TestPhoneValidation(t *testing.T) {
	v := NewValidator()
	type payload struct {
		Phone string `json:"phone" validate:"phone"`
	}
	for _, ok := range []string{"+49 69 123456", "(030) 1234-567", "0800/123"} {
		assert.NoError(t, v.Struct(payload{Phone: ok}), ok)
	}
	for _, bad := range []string{"", "abc", "+", "12"} {
		assert.Error(t, v.Struct(payload{Phone: bad}), bad)
	}
}
