package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks cfg against its struct tags and cross-field rules.
func Validate(cfg Match3Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}

		var details strings.Builder
		for _, fe := range verrs {
			if details.Len() > 0 {
				details.WriteString("; ")
			}
			switch fe.Tag() {
			case "oneof":
				fmt.Fprintf(&details, "%s must be one of [%s]", fe.Namespace(), fe.Param())
			case "min", "gte":
				fmt.Fprintf(&details, "%s must be at least %s", fe.Namespace(), fe.Param())
			case "max", "lte":
				fmt.Fprintf(&details, "%s must be at most %s", fe.Namespace(), fe.Param())
			case "gt":
				fmt.Fprintf(&details, "%s must be greater than %s", fe.Namespace(), fe.Param())
			case "ltefield":
				fmt.Fprintf(&details, "%s must not exceed %s", fe.Namespace(), fe.Param())
			case "len":
				fmt.Fprintf(&details, "%s must have %s entries", fe.Namespace(), fe.Param())
			default:
				fmt.Fprintf(&details, "%s failed %s validation", fe.Namespace(), fe.Tag())
			}
		}
		return fmt.Errorf("config: invalid configuration: %s", details.String())
	}

	th := cfg.Session.StarThresholds
	for i := 1; i < len(th); i++ {
		if th[i] < th[i-1] {
			return fmt.Errorf("config: invalid configuration: star_thresholds must be ascending, got %v", th)
		}
	}
	return nil
}
