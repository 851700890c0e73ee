package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bookkeeping-server/internal/apperr"
)

func TestFromService(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: apperr.Invalid("amount", apperr.ErrInvalidAmount), want: http.StatusBadRequest},
		{name: "not found", err: apperr.NotFound("account", "1"), want: http.StatusNotFound},
		{name: "conflict", err: apperr.Conflict("user", "email", apperr.ErrDuplicateEmail), want: http.StatusConflict},
		{name: "dependency", err: &apperr.DependencyError{Entity: "account", ID: "1", Dependent: "transactions", Count: 2}, want: http.StatusConflict},
		{name: "persistence", err: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var statusErr huma.StatusError
			require.ErrorAs(t, FromService(tt.err, "failed"), &statusErr)
			assert.Equal(t, tt.want, statusErr.GetStatus())
		})
	}
}

func TestParse(t *testing.T) {
	_, err := ParseUUID("id", "not-a-uuid")
	assert.Error(t, err)

	id, err := ParseOptionalUUID("categoryId", "")
	assert.NoError(t, err)
	assert.Nil(t, id)

	_, err = ParseDecimal("amount", "12,50")
	assert.Error(t, err)

	d, err := ParseDecimal("amount", "12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	ts, err := ParseTime("date", "")
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	_, err = ParseTime("date", "2025-01-15")
	assert.Error(t, err)

	ts, err = ParseTime("date", "2025-01-15T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15T08:30:00Z", FormatTime(ts))
}
