package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"lighthouse.app/pkg/errors"
	"lighthouse.app/pkg/validation"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the "digit" and "langtag" tags to gin's validator
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.NewConfigurationError("gin validator engine is not go-playground/validator", nil)
			return
		}
		if err := v.RegisterValidation("digit", validateDigit); err != nil {
			registerErr = errors.NewConfigurationError("register digit validator", err)
			return
		}
		if err := v.RegisterValidation("langtag", validateLanguageTag); err != nil {
			registerErr = errors.NewConfigurationError("register langtag validator", err)
		}
	})
	return registerErr
}

func validateDigit(fl validator.FieldLevel) bool {
	return validation.IsDigit(fl.Field().String())
}

func validateLanguageTag(fl validator.FieldLevel) bool {
	return validation.IsValidLanguageTag(fl.Field().String())
}
