package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrRemote_PassesClassifiedErrors(t *testing.T) {
	conflict := ErrConflict("stale_version")
	if got := ErrRemote("update_booking", conflict); !IsKind(got, KindConflict) {
		t.Fatalf("expected conflict to pass through, got %v", got)
	}

	wrapped := fmt.Errorf("tx: %w", ErrNotFound("booking_not_found"))
	if got := ErrRemote("update_booking", wrapped); !IsKind(got, KindNotFound) {
		t.Fatalf("expected wrapped not found to pass through, got %v", got)
	}

	raw := errors.New("connection refused")
	got := ErrRemote("update_booking", raw)
	if !IsKind(got, KindRemote) || !IsBusiness(got, "update_booking_failed") {
		t.Fatalf("expected remote error, got %v", got)
	}
	if !errors.Is(got, raw) {
		t.Fatalf("remote error should unwrap to the cause")
	}

	if ErrRemote("x", nil) != nil {
		t.Fatalf("nil stays nil")
	}
}

func TestFromError_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("notes", "notes_too_long"), http.StatusBadRequest, "notes_too_long"},
		{ErrInvalidTransition("rejected", "accepted"), http.StatusUnprocessableEntity, "invalid_transition"},
		{ErrConflict("stale_version"), http.StatusConflict, "stale_version"},
		{ErrNotFound("booking_not_found"), http.StatusNotFound, "booking_not_found"},
		{ErrRemote("list_bookings", errors.New("down")), http.StatusBadGateway, "list_bookings_failed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, tc.err)

		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		var body HTTPError
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Code != tc.code {
			t.Fatalf("%v: expected code %q, got %q", tc.err, tc.code, body.Code)
		}
	}
}
