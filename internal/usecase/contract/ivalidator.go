package usecasecontract

type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
	ValidateUsername(username string) error
	ValidatePhone(phone string) error
}
