package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"reviewhub/internal/httpapi/apperr"
)

// ReservedUsername is the self-accessor keyword on /users/me and can
// never be assigned as an actual username.
const ReservedUsername = "me"

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Username validates a username anywhere one is supplied (signup,
// admin create, self-update). Returns a field-scoped error.
func Username(username string) error {
	if username == ReservedUsername {
		return apperr.FieldError("username", "\"me\" is reserved and cannot be used as a username")
	}
	if len(username) == 0 || len(username) > 150 {
		return apperr.FieldError("username", "must be between 1 and 150 characters")
	}
	if !usernameRe.MatchString(username) {
		return apperr.FieldError("username", "may contain only letters, digits and @/./+/-/_ characters")
	}
	return nil
}

// Slug validates a Category/Genre slug.
func Slug(slug string) error {
	if len(slug) == 0 || len(slug) > 50 {
		return apperr.FieldError("slug", "must be between 1 and 50 characters")
	}
	if !slugRe.MatchString(slug) {
		return apperr.FieldError("slug", "may contain only letters, digits, hyphens and underscores")
	}
	return nil
}

// RegisterBindingValidators hooks the custom tags into gin's
// validator engine so request DTOs can declare them in binding tags.
func RegisterBindingValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return Username(fl.Field().String()) == nil
		})
		v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return Slug(fl.Field().String()) == nil
		})
	}
}
