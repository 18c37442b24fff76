package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind is the category of a storage failure.
type ErrorKind int

const (
	// KindUnknown is any storage fault outside the integrity family.
	KindUnknown ErrorKind = iota
	// KindIntegrity covers SQLSTATE class 23: not-null, foreign-key,
	// unique and check violations.
	KindIntegrity
)

func (k ErrorKind) String() string {
	if k == KindIntegrity {
		return "integrity"
	}
	return "unknown"
}

const integrityClass = "23"

// StoreError is returned by every service method in place of a raw driver error.
type StoreError struct {
	Kind   ErrorKind
	Entity string
	Op     string

	Code       string
	Message    string
	Detail     string
	Table      string
	Constraint string
	Column     string

	Err error
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "storage error"
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsIntegrity reports whether err carries an integrity-constraint violation.
func IsIntegrity(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Kind == KindIntegrity
}

func newStoreError(entity, op string, err error) *StoreError {
	storeErr := &StoreError{
		Kind:    KindUnknown,
		Entity:  entity,
		Op:      op,
		Message: err.Error(),
		Err:     err,
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		storeErr.Code = pgErr.Code
		storeErr.Message = pgErr.Message
		storeErr.Detail = pgErr.Detail
		storeErr.Table = pgErr.TableName
		storeErr.Constraint = pgErr.ConstraintName
		storeErr.Column = pgErr.ColumnName
		if strings.HasPrefix(pgErr.Code, integrityClass) {
			storeErr.Kind = KindIntegrity
		}
	}
	return storeErr
}
