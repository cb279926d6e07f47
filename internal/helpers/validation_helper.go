package helpers

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic",
	"Folk", "Funk", "Hip-Hop", "Heavy Metal", "Instrumental",
	"Jazz", "Musical Theatre", "Pop", "Punk", "R&B",
	"Reggae", "Rock n Roll", "Soul", "Other",
}

var registerOnce sync.Once
var registerErr error

// RegisterFormValidators adds the usstate and genre rules to gin's validator.
func RegisterFormValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}
		if registerErr = v.RegisterValidation("usstate", oneOfRule(States)); registerErr != nil {
			return
		}
		registerErr = v.RegisterValidation("genre", oneOfRule(Genres))
	})
	return registerErr
}

func oneOfRule(choices []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, choice := range choices {
			if value == choice {
				return true
			}
		}
		return false
	}
}

// FormErrors turns a binding error into messages fit for flashing.
func FormErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid form submission."}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := humanize(fieldErr.StructField())
		switch fieldErr.Tag() {
		case "required", "min":
			messages = append(messages, fmt.Sprintf("%s is required.", field))
		case "url":
			messages = append(messages, fmt.Sprintf("%s must be a valid URL.", field))
		case "usstate":
			messages = append(messages, "State must be a valid US state code.")
		case "genre":
			messages = append(messages, fmt.Sprintf("%q is not a valid genre.", fieldErr.Value()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s is too long.", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid.", field))
		}
	}
	return messages
}

// humanize splits a Go field name: "FacebookLink" -> "Facebook link",
// "ArtistID" -> "Artist id".
func humanize(name string) string {
	var b strings.Builder
	prevLower := false
	for i, r := range name {
		upper := unicode.IsUpper(r)
		if upper && prevLower {
			b.WriteByte(' ')
		}
		if i > 0 {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		prevLower = !upper
	}
	return b.String()
}
