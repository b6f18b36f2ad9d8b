package domain

import (
	"errors"
	"fmt"
)

var ErrEntityNotFound *notFoundError

type notFoundError struct {
	EntityType string
	Key        string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with key '%s' not found", e.EntityType, e.Key)
}

// NewNotFoundError builds the error returned by repositories when a lookup
// by id or fingerprint matches nothing. Match it with
// errors.As(err, &domain.ErrEntityNotFound).
func NewNotFoundError(entityType string, key fmt.Stringer) error {
	return &notFoundError{
		EntityType: entityType,
		Key:        key.String(),
	}
}

func NewNotFoundByKeyError(entityType, key string) error {
	return &notFoundError{
		EntityType: entityType,
		Key:        key,
	}
}

func IsNotFound(err error) bool {
	var nf *notFoundError
	return errors.As(err, &nf)
}
