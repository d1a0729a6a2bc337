package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cyber-pit/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("cost", "must be positive")

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: cost: must be positive; name: is required", ve.Error())

	err := ve.ToError(errors.CodeInvalidArgument)
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestBuildWithCode() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("weapons")

	err := vb.BuildWithCode(errors.CodeMisconfigured)
	s.Require().Error(err)
	s.Assert().True(errors.IsMisconfigured(err))
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateLength() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"empty", "", true},
		{"one character", "R", false},
		{"fifteen characters", "ABCDEFGHIJKLMNO", false},
		{"sixteen characters", "ABCDEFGHIJKLMNOP", true},
		{"multibyte counted as runes", "ŘŘŘŘŘŘŘŘŘŘŘŘŘŘŘ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateLength("name", tc.value, 1, 15, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("dodge_chance", 101, 0, 100, vb)
	errors.ValidateRange("miss_chance", 5, 0, 100, vb)
	errors.ValidatePositive("health", 0, vb)

	err := vb.Build()
	s.Require().Error(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["dodge_chance"][0], "must be between 0 and 100")
	s.Assert().Contains(validationErrors["health"][0], "must be positive")
	s.Assert().NotContains(validationErrors, "miss_chance")
}
