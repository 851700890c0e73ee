// Package apierr converts rule-layer errors and malformed request values into
// huma status errors.
package apierr

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
)

// FromService maps err to a status error by kind. message is used for
// persistence failures, whose detail is not meant for the caller.
func FromService(err error, message string) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return huma.NewError(http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		return huma.NewError(http.StatusNotFound, err.Error())
	case apperr.KindConflict, apperr.KindDependency:
		return huma.NewError(http.StatusConflict, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}

func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// ParseOptionalUUID returns nil for an empty value.
func ParseOptionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseUUID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func ParseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// ParseTime parses an RFC3339 timestamp. An empty value yields the zero time.
func ParseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field+", expected RFC3339", err)
	}
	return t, nil
}

// ParseOptionalTime returns nil for an empty value.
func ParseOptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseTime(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatTime renders t as RFC3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatOptionalTime renders nil as nil.
func FormatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
