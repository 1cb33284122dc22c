package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// engine returns the shared validator. Field names in errors follow the
// JSON names clients send.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// check validates v. Any missing required field yields ErrMissingFields so
// clients get a single message for incomplete forms; otherwise the first
// broken rule comes back as a *ValidationError.
func check(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}

	first := fieldErrs[0]
	return &ValidationError{Field: first.Field(), Rule: first.Tag(), Param: first.Param()}
}

// profileRules are the bounds of the editable profile.
type profileRules struct {
	DisplayName string `json:"displayName" validate:"max=100"`
	Tagline     string `json:"tagline" validate:"max=100"`
	Bio         string `json:"bio" validate:"max=2000"`

	Instagram   string `json:"instagram" validate:"max=200"`
	Twitter     string `json:"twitter" validate:"max=200"`
	Website     string `json:"website" validate:"max=200"`
	PublicEmail string `json:"email" validate:"omitempty,email"`

	DefaultColumns int    `json:"defaultColumns" validate:"min=1,max=4"`
	DefaultGap     int    `json:"defaultGap" validate:"min=0,max=200"`
	Theme          string `json:"theme" validate:"oneof=light dark"`
}

func rulesFor(u domain.User) profileRules {
	return profileRules{
		DisplayName:    u.DisplayName,
		Tagline:        u.Tagline,
		Bio:            u.Bio,
		Instagram:      u.SocialLinks.Instagram,
		Twitter:        u.SocialLinks.Twitter,
		Website:        u.SocialLinks.Website,
		PublicEmail:    u.SocialLinks.Email,
		DefaultColumns: u.PortfolioSettings.DefaultColumns,
		DefaultGap:     u.PortfolioSettings.DefaultGap,
		Theme:          u.PortfolioSettings.Theme,
	}
}
