package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func captureLog(t *testing.T, level zapcore.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), level)

	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	return &buf
}

func TestRequestLogger(t *testing.T) {
	buf := captureLog(t, zap.DebugLevel)

	handlerCalled := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	})

	req := httptest.NewRequest(http.MethodGet, "/test-url", nil)
	rr := httptest.NewRecorder()

	RequestLogger(testHandler).ServeHTTP(rr, req)

	require.True(t, handlerCalled)
	assert.Equal(t, http.StatusTeapot, rr.Code)

	body, _ := io.ReadAll(rr.Body)
	assert.Equal(t, "short", string(body))

	logOutput := buf.String()
	assert.Contains(t, logOutput, `"status":418`)
	assert.Contains(t, logOutput, `"uri":"/test-url"`)
	assert.Contains(t, logOutput, `"size":5`)
}

func TestRequestLogger_Redirect(t *testing.T) {
	buf := captureLog(t, zap.DebugLevel)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://example.com")
		w.WriteHeader(http.StatusFound)
	})

	rr := httptest.NewRecorder()
	RequestLogger(testHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/go/valley", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Contains(t, buf.String(), `"location":"https://example.com"`)
	assert.Contains(t, buf.String(), `"status":302`)
}

func TestRequestLogger_ImplicitStatus(t *testing.T) {
	buf := captureLog(t, zap.DebugLevel)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	RequestLogger(testHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRequestLogger_ServerErrorAtErrorLevel(t *testing.T) {
	buf := captureLog(t, zap.ErrorLevel)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	RequestLogger(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Empty(t, buf.String())

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	RequestLogger(failing).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Contains(t, buf.String(), `"status":503`)
}

func TestInitialize(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, Initialize("warn"))
	assert.True(t, Log.Core().Enabled(zap.WarnLevel))
	assert.False(t, Log.Core().Enabled(zap.InfoLevel))

	assert.Error(t, Initialize("loud"))
}
