package validator

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

var (
	phonePattern    = regexp.MustCompile(`^[0-9]{10,12}$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

const (
	minPasswordLength = 6
	minUsernameLength = 3
	maxUsernameLength = 30
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	return &AppValidator{validate: v}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidatePasswordStrength enforces the minimum password length.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

func (av *AppValidator) ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, '.', '-' and '_'")
	}
	return nil
}

// ValidatePhone accepts 10 to 12 digits.
func (av *AppValidator) ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("phone number must be 10 to 12 digits")
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone", phoneFL)
		v.RegisterValidation("category", categoryFL)
		v.RegisterValidation("reservationstatus", reservationStatusFL)
	}
}

func phoneFL(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func categoryFL(fl validator.FieldLevel) bool {
	return slices.Contains(entity.ListingCategories, fl.Field().String())
}

func reservationStatusFL(fl validator.FieldLevel) bool {
	return entity.ReservationStatus(fl.Field().String()).IsValid()
}
