package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStaleStatus is returned when a status transition finds the row in another state.
var ErrStaleStatus = errors.New("document status changed concurrently")

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation. It relies
// on the connection being opened with TranslateError enabled.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
