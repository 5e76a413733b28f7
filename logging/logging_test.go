package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blog-go/config"
)

func TestNewLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&config.LogConfig{Level: "debug", Format: "json"}, &buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("post_id", "abc").Info("hello")
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "abc", line["post_id"])
}

func TestNewUnknownLevelFallsBack(t *testing.T) {
	l := NewWithOutput(&config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestRequestLoggerWritesStatus(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&config.LogConfig{Level: "info", Format: "json"}, &buf)

	h := middleware.RequestID(RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/x", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "/api/posts/x", line["path"])
	assert.Equal(t, "warning", line["level"])
	assert.NotEmpty(t, line["request_id"])
}
