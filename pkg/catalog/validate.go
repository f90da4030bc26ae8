package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks every record against its struct constraints, e.g. a
// service price must exceed its product cost.
func Validate(data analytics.Catalog) error {
	err := structValidator().Struct(data)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("catalog: validate: %w", err)
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("catalog: %s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.Join(errs...)
}
