package booking

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgNameRequired   = "Name is required"
	msgContactInvalid = "Contact must be a 10-digit number"
	msgEmailInvalid   = "Valid email is required"
	msgNICInvalid     = `NIC must be 9 digits + "V" or 12 digits`
)

var (
	contactPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
	nicOldPattern  = regexp.MustCompile(`^[0-9]{9}V$`)
	nicNewPattern  = regexp.MustCompile(`^[0-9]{12}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	register("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	register("contact10", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	})

	register("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	register("nic", func(fl validator.FieldLevel) bool {
		nic := NormalizeNIC(fl.Field().String())

		return nicOldPattern.MatchString(nic) || nicNewPattern.MatchString(nic)
	})

	return v
}

// NormalizeNIC trims and uppercases a national ID the way the form treats it
// before matching either accepted shape.
func NormalizeNIC(nic string) string {
	return strings.ToUpper(strings.TrimSpace(nic))
}

// Validate checks every buyer field independently and returns the complete
// error mapping. The buyer is valid iff the mapping is empty. The NIC rule is
// applied only when the form collects it.
func Validate(buyer Buyer, collectNIC bool) FieldErrors {
	var err error
	if collectNIC {
		err = validate.Struct(buyer)
	} else {
		err = validate.StructExcept(buyer, "NIC")
	}

	fields := make(FieldErrors)
	if err == nil {
		return fields
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Struct values never produce InvalidValidationError.
		return fields
	}

	for _, fieldErr := range validationErrs {
		switch fieldErr.StructField() {
		case "Name":
			fields[FieldName] = msgNameRequired
		case "Contact":
			fields[FieldContact] = msgContactInvalid
		case "Email":
			fields[FieldEmail] = msgEmailInvalid
		case "NIC":
			fields[FieldNIC] = msgNICInvalid
		}
	}

	return fields
}
