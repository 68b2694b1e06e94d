package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "too short", input: strings.Repeat("a", 19), expected: false},
		{name: "lower bound", input: strings.Repeat("a", 20), expected: true},
		{name: "upper bound", input: strings.Repeat("a", 60), expected: true},
		{name: "too long", input: strings.Repeat("a", 61), expected: false},
		{name: "multibyte counted as characters", input: strings.Repeat("é", 20), expected: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidName(tt.input))
		})
	}
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress(""))
	assert.True(t, ValidAddress(strings.Repeat("x", 400)))
	assert.False(t, ValidAddress(strings.Repeat("x", 401)))
}

func TestValidPassword(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "valid", input: "Secret!23", expected: true},
		{name: "eight chars", input: "Abcdef!g", expected: true},
		{name: "sixteen chars", input: "Abcdefghijklmn!p", expected: true},
		{name: "too short", input: "Ab!defg", expected: false},
		{name: "too long", input: "Abcdefghijklmno!q", expected: false},
		{name: "no uppercase", input: "secret!23", expected: false},
		{name: "no special char", input: "Secret123", expected: false},
		{name: "special char outside set", input: "Secret-123", expected: false},
		{name: "quote counts as special", input: `Secret"123`, expected: true},
		{name: "brace counts as special", input: "Secret{123", expected: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidPassword(tt.input))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("jane@example.com"))
	assert.True(t, ValidEmail("jane.doe+x@mail.example.org"))
	assert.False(t, ValidEmail("jane@example"))
	assert.False(t, ValidEmail("jane example@mail.com"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail("jane@@example.com"))
	assert.False(t, ValidEmail(""))
}

type accountInput struct {
	Name     string  `json:"name" validate:"required,username"`
	Email    string  `json:"email" validate:"required,emailshape"`
	Address  *string `json:"address" validate:"omitempty,address"`
	Password string  `json:"password" validate:"required,password"`
	Role     string  `json:"role" validate:"omitempty,role"`
}

func TestValidatorStruct(t *testing.T) {
	v := New()

	t.Run("valid input returns nil", func(t *testing.T) {
		in := accountInput{
			Name:     "A Perfectly Valid User Name",
			Email:    "valid@example.com",
			Password: "Secret!23",
			Role:     "Store Owner",
		}
		assert.Nil(t, v.Struct(in))
	})

	t.Run("reports every failing field by json name", func(t *testing.T) {
		long := strings.Repeat("x", 401)
		in := accountInput{
			Name:     "short",
			Email:    "nope",
			Address:  &long,
			Password: "weak",
			Role:     "Superuser",
		}
		fields := v.Struct(in)
		assert.Equal(t, "Name must be between 20-60 characters.", fields["name"])
		assert.Equal(t, "Invalid email format.", fields["email"])
		assert.Equal(t, "Address cannot exceed 400 characters.", fields["address"])
		assert.Equal(t, "Password must be 8-16 chars, incl. uppercase and special character.", fields["password"])
		assert.Equal(t, "Invalid role specified.", fields["role"])
	})

	t.Run("missing required field", func(t *testing.T) {
		in := accountInput{Name: "A Perfectly Valid User Name", Password: "Secret!23"}
		fields := v.Struct(in)
		assert.Equal(t, "email is required.", fields["email"])
		assert.Len(t, fields, 1)
	})
}
