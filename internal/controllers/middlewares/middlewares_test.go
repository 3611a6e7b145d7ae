package middlewares

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func gzipBytes(t *testing.T, data string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	_, err := gzw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gzw.Close())
	return &buf
}

func TestGzipMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GzipMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("compressed request and response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", gzipBytes(t, "hello"))
		req.Header.Set("Content-Encoding", "gzip")
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

		gzr, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(gzr)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("plain", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("hello")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, "hello", w.Body.String())
	})

	t.Run("broken gzip body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGzipMiddleware_Server(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handlerErrs := make(chan []string, 1)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		handlerErrs <- c.Errors.Errors()
	})
	r.Use(GzipMiddleware())
	r.DELETE("/links/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/cached", func(c *gin.Context) { c.Status(http.StatusNotModified) })
	r.GET("/empty", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/links", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"name": "Mock"}) })

	srv := httptest.NewServer(r)
	defer srv.Close()
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}

	tests := []struct {
		name         string
		method       string
		path         string
		wantStatus   int
		wantEncoding string
		wantBody     string
	}{
		{name: "no content", method: http.MethodDelete, path: "/links/abcdefg", wantStatus: http.StatusNoContent},
		{name: "not modified", method: http.MethodGet, path: "/cached", wantStatus: http.StatusNotModified},
		{name: "empty body", method: http.MethodGet, path: "/empty", wantStatus: http.StatusOK},
		{
			name:         "json body",
			method:       http.MethodGet,
			path:         "/links",
			wantStatus:   http.StatusOK,
			wantEncoding: "gzip",
			wantBody:     `{"name":"Mock"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)
			req.Header.Set("Accept-Encoding", "gzip")

			res, err := client.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantEncoding, res.Header.Get("Content-Encoding"))
			assert.Empty(t, <-handlerErrs)

			raw, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			if tt.wantEncoding == "" {
				assert.Empty(t, raw)
				return
			}
			gzr, err := gzip.NewReader(bytes.NewReader(raw))
			require.NoError(t, err)
			body, err := io.ReadAll(gzr)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestMethodOverride(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/items/:id", MethodOverride(map[string]gin.HandlerFunc{
		http.MethodDelete: func(c *gin.Context) {
			c.String(http.StatusOK, c.Request.Method+" "+c.Param("id"))
		},
	}))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "delete", target: "/items/42?_method=DELETE", wantStatus: http.StatusOK, wantBody: "DELETE 42"},
		{name: "lowercase", target: "/items/42?_method=delete", wantStatus: http.StatusOK, wantBody: "DELETE 42"},
		{name: "unknown", target: "/items/42?_method=PATCH", wantStatus: http.StatusMethodNotAllowed},
		{name: "missing", target: "/items/42", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	for _, path := range []string{"/ok", "/missing", "/fail"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["route"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap()["error"], assert.AnError.Error())
}
