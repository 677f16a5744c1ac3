package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages maps a failed rule to the message returned to the client. Keys are
// "Field.tag", "Field" or "*.tag".
type Messages map[string]string

type schema interface {
	messages() Messages
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request against its struct tags. A missing required
// field is reported before any other rule so clients see one message.
func Validate(req schema) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	for _, e := range verrs {
		if e.Tag() == "required" {
			fe = e
			break
		}
	}

	// dive errors are reported as Field[i]
	field, name := trimIndex(fe.StructField()), trimIndex(fe.Field())
	msgs := req.messages()
	for _, key := range []string{field + "." + fe.Tag(), field, "*." + fe.Tag()} {
		if msg, ok := msgs[key]; ok {
			return errors.New(msg)
		}
	}
	return fmt.Errorf("%s is invalid", name)
}

func trimIndex(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
