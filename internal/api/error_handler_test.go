package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_NotFound(t *testing.T) {
	for _, err := range []error{
		domain.ErrUserNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrPostNotFound,
		domain.ErrCommentNotFound,
	} {
		code, msg := render(t, err)
		if code != http.StatusNotFound {
			t.Errorf("%v: expected 404, got %d", err, code)
		}
		if msg != err.Error() {
			t.Errorf("%v: message = %q", err, msg)
		}
	}
}

func TestErrorHandler_Conflicts(t *testing.T) {
	code, msg := render(t, fmt.Errorf("user has 2 posts: %w", domain.ErrHasDependents))
	if code != http.StatusConflict {
		t.Errorf("expected 409, got %d", code)
	}
	if msg != "user has 2 posts: entity has dependent records" {
		t.Errorf("message = %q", msg)
	}

	if code, _ := render(t, domain.ErrLastUser); code != http.StatusConflict {
		t.Errorf("expected 409 for last user, got %d", code)
	}
}

func TestErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid id"))
	if code != http.StatusBadRequest || msg != "invalid id" {
		t.Errorf("got %d %q", code, msg)
	}
}

func TestErrorHandler_UnexpectedErrorIsMasked(t *testing.T) {
	code, msg := render(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Errorf("internal details must not leak, got %q", msg)
	}
}
