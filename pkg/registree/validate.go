package registree

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var errFullAndPartial = errors.New(
	"full registration and partial registration are mutually exclusive",
)

var validate = newValidator()

func newValidator() *validator.Validate {
	res := validator.New()
	// error is only returned for empty tags or nil functions
	_ = res.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return res
}

// describe turns validation failures into a short human-readable list.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		switch v.Tag() {
		case "notblank", "required", "required_if":
			fields = append(fields, v.Field()+" is required")
		case "email":
			fields = append(fields, v.Field()+" must be a valid email address")
		case "gt":
			fields = append(fields, v.Field()+" must be positive")
		case "gte":
			fields = append(fields, v.Field()+" must not be negative")
		default:
			fields = append(fields, v.Field()+" fails "+v.Tag())
		}
	}
	return strings.Join(fields, ", ")
}
