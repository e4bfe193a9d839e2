package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRequest = errors.New("invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(s any) error {
	err := validate.Struct(s)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	return nil
}
