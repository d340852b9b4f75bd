package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

type bookURI struct {
	BookID string `uri:"bookId" validate:"required,uuid"`
}

type bookAndCustomerURI struct {
	BookID     string `uri:"bookId" validate:"required,uuid"`
	CustomerID string `uri:"customerId" validate:"required,uuid"`
}

type customerQuery struct {
	CustomerID string `form:"customerId" validate:"required,uuid"`
}

type setNotificationRequest struct {
	BookID     string `json:"bookId" validate:"required,uuid"`
	CustomerID string `json:"customerId" validate:"required,uuid"`
}

type addBookRequest struct {
	BookID  string `json:"bookId" validate:"required,uuid"`
	ISBN    string `json:"isbn" validate:"required,max=32"`
	Title   string `json:"title" validate:"required,max=512"`
	Authors string `json:"authors" validate:"max=512"`
}

type registerPatronRequest struct {
	CustomerID                  string `json:"customerId" validate:"required,uuid"`
	Name                        string `json:"name" validate:"required,max=256"`
	Email                       string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone                       string `json:"phone" validate:"required_without=Email,omitempty,e164"`
	PreferredNotificationMethod string `json:"preferredNotificationMethod" validate:"required,oneof=email phone"`
}

func (r registerPatronRequest) channel() core.NotificationChannel {
	if r.PreferredNotificationMethod == core.ChannelPhone {
		return core.ChannelPhone
	}

	return core.ChannelEmail
}

// newValidator creates a validator that reports fields by their json, uri or form name.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "uri", "form"} {
			if name, _, _ := strings.Cut(field.Tag.Get(tag), ","); name != "" && name != "-" {
				return name
			}
		}

		return field.Name
	})

	return validate
}

// describeValidationError turns validator errors into a description for the caller.
func describeValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request: " + err.Error()
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required", "required_without":
			problems = append(problems, fmt.Sprintf("%s is required", fieldErr.Field()))
		case "uuid":
			problems = append(problems, fmt.Sprintf("%s must be a UUID", fieldErr.Field()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s]", fieldErr.Field(), fieldErr.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
	}

	return "Invalid request: " + strings.Join(problems, ", ")
}

// mustParse is only called on values that passed the uuid validation.
func mustParse(id string) uuid.UUID {
	return uuid.MustParse(id)
}
