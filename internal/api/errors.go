package api

import (
	"errors"
	"net/http"

	"hive-bridge/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var (
		noDB        *domain.NoSuchDatabaseError
		noTable     *domain.NoSuchTableError
		dbExists    *domain.DatabaseAlreadyExistsError
		tableExists *domain.TableAlreadyExistsError
		validation  *domain.ValidationError
		unsupported *domain.UnsupportedColumnTypeError
	)

	switch {
	case errors.As(err, &noDB), errors.As(err, &noTable):
		return http.StatusNotFound
	case errors.As(err, &dbExists), errors.As(err, &tableExists):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrNoActiveConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
