// Package validation holds the format rules for user supplied account and
// store fields, exposed both as plain predicates and as validator tags.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength     = 20
	NameMaxLength     = 60
	AddressMaxLength  = 400
	PasswordMinLength = 8
	PasswordMaxLength = 16

	// PasswordSpecialChars is the punctuation set a password must draw from
	PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperCasePattern = regexp.MustCompile(`[A-Z]`)
	specialPattern   = regexp.MustCompile(`[` + regexp.QuoteMeta(PasswordSpecialChars) + `]`)
)

// Messages shown to the client for each custom tag
var tagMessages = map[string]string{
	"username":   fmt.Sprintf("Name must be between %d-%d characters.", NameMinLength, NameMaxLength),
	"emailshape": "Invalid email format.",
	"address":    fmt.Sprintf("Address cannot exceed %d characters.", AddressMaxLength),
	"password":   fmt.Sprintf("Password must be %d-%d chars, incl. uppercase and special character.", PasswordMinLength, PasswordMaxLength),
	"role":       "Invalid role specified.",
}

// ValidName reports whether name has 20 to 60 characters
func ValidName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= NameMinLength && n <= NameMaxLength
}

// ValidAddress reports whether address fits in 400 characters
func ValidAddress(address string) bool {
	return utf8.RuneCountInString(address) <= AddressMaxLength
}

// ValidPassword reports whether password has 8 to 16 characters, at least one
// uppercase ASCII letter and at least one character of PasswordSpecialChars
func ValidPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return false
	}
	return upperCasePattern.MatchString(password) && specialPattern.MatchString(password)
}

// ValidEmail reports whether email has the local@domain.tld shape
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validator validates tagged request structs
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the account tags registered:
// username, emailshape, address, password and role.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil function
	_ = v.RegisterValidation("username", stringRule(ValidName))
	_ = v.RegisterValidation("emailshape", stringRule(ValidEmail))
	_ = v.RegisterValidation("address", stringRule(ValidAddress))
	_ = v.RegisterValidation("password", stringRule(ValidPassword))
	_ = v.RegisterValidation("role", roleRule)

	return &Validator{validate: v}
}

func stringRule(rule func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return rule(fl.Field().String())
	}
}

func roleRule(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

// Struct validates s and returns a field -> message map, or nil when s is valid
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
