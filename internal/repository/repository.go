package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Validator checks a model before it is written.
type Validator interface {
	ValidateStruct(s interface{}) error
}

// first runs q and maps "no rows" to a nil error with found == false.
func first(q *gorm.DB, dest interface{}) (found bool, err error) {
	err = q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
