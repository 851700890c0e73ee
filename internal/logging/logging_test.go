package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging(logrus.InfoLevel)
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func TestLogData_NilSafe(t *testing.T) {
	var logData *LogData
	assert.NotPanics(t, func() {
		logData.AddData("key", "value")
		logData.AddTiming("timing")()
		logData.AddToExistingTiming("timing")()
		_ = logData.Log()
	})
	assert.Nil(t, GetLogData(context.Background()))
}

func TestLogData_Timings(t *testing.T) {
	logger, _ := newBufferLogger()
	logData := NewLogData(logger)

	logData.AddToExistingTiming("db")()
	logData.AddToExistingTiming("db")()
	logData.AddData("count", 3)

	entry := logData.Log()
	assert.Contains(t, entry.Data, "db")
	assert.Equal(t, 3, entry.Data["count"])
}

func TestMiddleware_LogsStatusPerRequest(t *testing.T) {
	logger, buf := newBufferLogger()

	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.NotNil(t, GetLogData(req.Context()))
		GetLogData(req.Context()).AddData("handled", true)
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts/x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["loglevel"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "/v1/accounts/x", line["path"])
	assert.Equal(t, true, line["handled"])
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, buf := newBufferLogger()

	wrapped := LoggingWrapper("Test", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	wrapped(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), "Handler.Test.Error")
}
