package content

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"name":    "Name is required (min 2 chars)",
	"email":   "Valid email is required",
	"subject": "Subject is required",
	"message": "Message must be at least 10 characters",
}

// FieldErrors maps form field names to visitor-facing messages.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return "invalid contact form: " + strings.Join(fields, ", ")
}

// ValidateContact trims req and checks it locally. On failure the error is
// a FieldErrors; the trimmed request is returned either way so a form can
// be re-rendered with the visitor's values.
func ValidateContact(req ContactRequest) (ContactRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.Service = strings.TrimSpace(req.Service)

	err := validate.Struct(req)
	if err == nil {
		return req, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return req, err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out[fe.Field()] = msg
	}
	return req, out
}
