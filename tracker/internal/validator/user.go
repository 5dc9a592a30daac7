package validator

import (
	"regexp"
	"strings"
	"unicode"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/Astemirdum/book-tracker/tracker/internal/errs"
	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"go.uber.org/zap"
)

var usernameChars = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

const (
	usernameMin = 3
	usernameMax = 20
	passwordMin = 8
)

type UserValidator struct {
	log   *zap.Logger
	email *govalidator.Validate
}

var _ Validator[model.UserRequest] = (*UserValidator)(nil)

func NewUserValidator(log *zap.Logger) *UserValidator {
	return &UserValidator{log: log.Named("user_validator"), email: govalidator.New()}
}

func (v *UserValidator) Validate(u model.UserRequest) error {
	var details []string
	details = append(details, v.checkEmail(u.Email)...)
	details = append(details, checkUsername(u.Username)...)
	details = append(details, checkPassword(u.Password)...)

	if len(details) > 0 {
		v.log.Debug("user rejected", zap.String("username", u.Username), zap.Strings("details", details))
	}
	return newError(errs.UserNotValid, "user is not valid", details)
}

func (v *UserValidator) checkEmail(email string) []string {
	if strings.TrimSpace(email) == "" {
		return []string{"email cannot be empty"}
	}
	if err := v.email.Var(email, "email"); err != nil {
		return []string{"email format is invalid"}
	}
	return nil
}

func checkUsername(name string) []string {
	if strings.TrimSpace(name) == "" {
		return []string{"username cannot be empty"}
	}
	var out []string
	if n := len([]rune(name)); n < usernameMin || n > usernameMax {
		out = append(out, "username must be between 3 and 20 characters")
	}
	if !usernameChars.MatchString(name) {
		out = append(out, "username contains invalid characters")
	}
	return out
}

func checkPassword(pw string) []string {
	if strings.TrimSpace(pw) == "" {
		return []string{"password cannot be empty"}
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	var out []string
	if len([]rune(pw)) < passwordMin {
		out = append(out, "password must be at least 8 characters")
	}
	if !upper {
		out = append(out, "password must contain an uppercase letter")
	}
	if !lower {
		out = append(out, "password must contain a lowercase letter")
	}
	if !digit {
		out = append(out, "password must contain a digit")
	}
	if !special {
		out = append(out, "password must contain a special character")
	}
	return out
}
