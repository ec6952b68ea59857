package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DDMMYYYY solo valida forma; 31/02/2024 pasa.
var birthDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Validator envuelve validator/v10 con nombres de campo tomados del tag `form`
// y mensajes tomados del tag `msg`.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		return birthDatePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register ddmmyyyy: %v", err))
	}

	// maxbytes cuenta bytes, no runas (bcrypt corta en 72 bytes)
	if err := v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	}); err != nil {
		panic(fmt.Sprintf("validation: register maxbytes: %v", err))
	}

	return &Validator{v: v}
}

// Struct valida s (puntero a struct). Devuelve nil si es válido.
func (v *Validator) Struct(s any) *FieldErrors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	out := newFieldErrors()

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		// InvalidValidationError: el caller pasó algo que no es struct
		out.add("_", err.Error())
		return out
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for _, fe := range ves {
		out.add(fe.Field(), message(t, fe))
	}
	return out
}

// message: primero `msg_<tag>` (p.ej. msg_maxbytes), después `msg`.
func message(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if m := strings.TrimSpace(sf.Tag.Get("msg_" + fe.Tag())); m != "" {
			return m
		}
		if m := strings.TrimSpace(sf.Tag.Get("msg")); m != "" {
			return m
		}
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
