package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/scheduling"
)

// RegisterValidators installs the wire-format validators used by the booking
// request bindings. Call once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(model.DateLayout, fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := scheduling.ParseClock(fl.Field().String())
		return err == nil
	})
}
