package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("phone", validatePhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts bare digit strings of 10 to 15 digits.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
