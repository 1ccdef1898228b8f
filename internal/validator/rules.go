package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// timeSlotPattern matches the zero-padded HH:MM slots stored on notification
// schedules. Expansion compares slots by exact string match against the
// current tick, so "8:00" would never fire.
var timeSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func registerCustomRules(v *validator.Validate) error {
	return v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return timeSlotPattern.MatchString(fl.Field().String())
	})
}
