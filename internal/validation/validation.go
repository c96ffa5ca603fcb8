// Package validation checks form input before any request is issued.
package validation

import (
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/jdupreez/trolley/internal/models"
)

var validate = validator.New()

// imagePattern recognizes the raster/vector formats the item card can
// render. The query string, if any, is ignored.
var imagePattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)(\?.*)?$`)

// Result reports whether input passed validation and, if not, the message
// to show the user.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Message: msg} }

// Registration checks a registration form: all fields required, a
// plausible email, and a password of at least six characters.
func Registration(data *models.RegisterData) Result {
	if data.Name == "" || data.Surname == "" || data.Email == "" ||
		data.Password == "" || data.CellNumber == "" {
		return fail("All fields are required.")
	}
	if validate.Var(data.Email, "email") != nil {
		return fail("Please enter a valid email address.")
	}
	if validate.Var(data.Password, "min=6") != nil {
		return fail("Password must be at least 6 characters long.")
	}
	return ok()
}

// Login checks a login form.
func Login(email, password string) Result {
	if email == "" || password == "" {
		return fail("Email and password are required.")
	}
	if validate.Var(email, "email") != nil {
		return fail("Please enter a valid email address.")
	}
	return ok()
}

// ProfileUpdate checks a profile form. Fields are optional; a password
// change must be confirmed and at least six characters.
func ProfileUpdate(email, password, confirmPassword string) Result {
	if email != "" && validate.Var(email, "email") != nil {
		return fail("Please enter a valid email address.")
	}
	if password != "" || confirmPassword != "" {
		if password != confirmPassword {
			return fail("Passwords do not match.")
		}
		if validate.Var(password, "min=6") != nil {
			return fail("Password must be at least 6 characters long.")
		}
	}
	return ok()
}

// ValidImageURL reports whether raw may be used as an item image. Empty is
// valid (the image is optional); anything else must be an absolute
// http/https URL ending in a recognized image extension.
func ValidImageURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return imagePattern.MatchString(raw)
}
