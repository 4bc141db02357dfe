package handler

import (
	"github.com/yourorg/crypto-tracker/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Must be called once before the router serves requests.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("direction", validDirection)
	}
}

// validDirection accepts only the two supported alert directions
func validDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.DirectionAbove, model.DirectionBelow:
		return true
	}
	return false
}
