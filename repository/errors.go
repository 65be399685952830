package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"villa-backend/utils"
)

const (
	mysqlErrDuplicateEntry    = 1062
	mysqlErrNoReferencedRow   = 1452
	mysqlErrRowIsReferenced   = 1451
	duplicateKeyMessage       = "Record already exists!"
	foreignKeyViolatedMessage = "Referenced record does not exist!"
)

// ErrDuplicateKey and ErrForeignKey let domain repositories swap in
// their own wording while keeping the storage error for logs.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
)

// translateError maps unique and foreign key violations to a validation
// error. The pre-checks in the domain repositories only give a friendlier
// early answer; this is what actually stops concurrent duplicates.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isDuplicateKey(err):
		return utils.WrapValidationError(errors.Join(ErrDuplicateKey, err), duplicateKeyMessage)
	case isForeignKeyViolation(err):
		return utils.WrapValidationError(errors.Join(ErrForeignKey, err), foreignKeyViolatedMessage)
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == mysqlErrNoReferencedRow || myErr.Number == mysqlErrRowIsReferenced) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// withMessage rewrites the client-facing message of a translated error of
// the given kind.
func withMessage(err error, kind error, message string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) && errors.Is(appErr.Err, kind) {
		return utils.WrapValidationError(appErr.Err, message)
	}
	return err
}
