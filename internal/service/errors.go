package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfMessage        = errors.New("cannot message your own listing")
	ErrNoConversation     = errors.New("no conversation started yet")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageErr tags a repository failure so callers can match it with
// errors.Is without importing the storage driver. Record-not-found is
// handled separately and never passes through here.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
