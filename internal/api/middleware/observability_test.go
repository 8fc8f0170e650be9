package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger_WritesLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/courses/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/courses/42", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer secret-token")
	e.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if line["route"] != "/courses/:id" {
		t.Fatalf("unexpected route: %v", line["route"])
	}
	if line["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected status: %v", line["status"])
	}
	if bytes.Contains(buf.Bytes(), []byte("secret-token")) {
		t.Fatal("authorization header leaked into logs")
	}
}

func TestRequestLogger_ServerErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/courses", func(c echo.Context) error {
		return errors.New("catalog store unreachable")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if line["level"] != "error" || line["error"] != "catalog store unreachable" {
		t.Fatalf("expected error entry with cause, got %v", line)
	}
}
