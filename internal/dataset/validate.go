package dataset

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func jobValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			v := fl.Field().Float()
			return !math.IsInf(v, 0) && !math.IsNaN(v)
		})
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks every job class. The error names the first offending
// 1-based row and field.
func Validate(jobs []compliance.JobClass) error {
	v := jobValidator()
	for i := range jobs {
		if err := v.Struct(jobs[i]); err != nil {
			return rowValidationError(i+1, err)
		}
	}
	return nil
}

func rowValidationError(row int, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("row %d is invalid", row))
	}

	fe := verrs[0]
	var reason string
	switch fe.Tag() {
	case "finite":
		reason = "must be a finite number"
	case "gte":
		reason = "must not be negative"
	case "gtefield":
		reason = "must be at least min_salary"
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		reason = "is invalid"
	}
	return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("row %d: %s %s", row, fe.Field(), reason))
}
