package handlers_test

import (
	"fmt"

	apperrors "github.com/aarogyaai/backend/pkg/errors"
)

func apperrNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
}
