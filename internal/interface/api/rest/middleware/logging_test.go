package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func loggedBody(t *testing.T, logs *observer.ObservedLogs) string {
	t.Helper()

	entries := logs.All()
	require.Len(t, entries, 1)
	for _, f := range entries[0].Context {
		if f.Key == "body" {
			return f.String
		}
	}
	t.Fatal("no body field logged")
	return ""
}

func setupRouter(handler gin.HandlerFunc) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogGin(zap.New(core), nil))
	r.POST("/api/v1/auth/login", handler)
	r.POST("/api/v1/files/:file_id/share", handler)

	return r, logs
}

func TestRequestLogGin_BodyCapture(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	tests := []struct {
		name        string
		path        string
		body        string
		contentType string
		wantBody    string
		wantOmitted string
	}{
		{
			name:        "credentials on auth routes never hit the log",
			path:        "/api/v1/auth/login",
			body:        `{"email":"alice@example.com","password":"VeryStrongPassw0rd!"}`,
			contentType: "application/json",
			wantBody:    "<credentials omitted>",
		},
		{
			name:        "multipart bodies are omitted",
			path:        "/api/v1/files/0f0f/share",
			body:        "----boundary\r\n",
			contentType: "multipart/form-data; boundary=--boundary",
			wantBody:    "<multipart/form-data omitted>",
		},
		{
			name:        "other json bodies are logged verbatim",
			path:        "/api/v1/files/0f0f/share",
			body:        `{"email":"bob@example.com"}`,
			contentType: "application/json",
			wantBody:    `{"email":"bob@example.com"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, logs := setupRouter(ok)

			req, err := http.NewRequest(http.MethodPost, tt.path, bytes.NewReader([]byte(tt.body)))
			require.NoError(t, err)
			req.Header.Set("Content-Type", tt.contentType)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantBody, loggedBody(t, logs))
		})
	}
}

func TestRequestLogGin_HandlerStillSeesTheBody(t *testing.T) {
	var got string
	echo := func(c *gin.Context) {
		b, _ := c.GetRawData()
		got = string(b)
		c.Status(http.StatusOK)
	}

	r, _ := setupRouter(echo)

	payload := `{"email":"bob@example.com"}`
	req, err := http.NewRequest(http.MethodPost, "/api/v1/files/0f0f/share", bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, payload, got)
}
