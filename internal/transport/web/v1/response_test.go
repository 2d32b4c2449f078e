package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidBookingRange, http.StatusBadRequest},
		{domain.ErrBadParams, http.StatusBadRequest},
		{domain.ErrUserExists, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		// исторически 404, не 409
		{domain.ErrRoomUnavailable, http.StatusNotFound},
		{domain.ErrBookingNotFound, http.StatusNotFound},
		{domain.ErrRoomNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.New("pg: broken pipe"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, _ := MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, "err=%v", tc.err)
	}
}

func TestMapDomainErrorSeesWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("room is not available for the selected dates: %w", domain.ErrRoomUnavailable)
	status, _ := MapDomainError(err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWriteDomainErrorBody(t *testing.T) {
	err := fmt.Errorf("booking is not found with this email x@y.com: %w", domain.ErrBookingNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/email/x@y.com", nil)
	WriteDomainError(rec, req, err)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorObject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "booking is not found with this email x@y.com", body.Message)
	assert.Equal(t, "uri=/v1/bookings/email/x@y.com", body.Details)
	assert.Equal(t, domain.DateOf(time.Now().UTC()), body.TimeStamp)
}

func TestWriteDomainErrorFallbackMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/rooms/9", nil)
	WriteDomainError(rec, req, domain.ErrRoomNotFound)

	var body ErrorObject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Room is not found", body.Message)
}

func TestWriteJSONSkipsBodyForHead(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodHead, "/v1/rooms", nil)
	WriteJSON(rec, req, http.StatusOK, map[string]string{"k": "v"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorObjectTimeStampFormat(t *testing.T) {
	b, err := json.Marshal(ErrorObject{
		Message:   "m",
		Details:   "uri=/x",
		TimeStamp: domain.NewDate(2026, time.January, 15),
	})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"timeStamp":"15-01-2026"`)
}
