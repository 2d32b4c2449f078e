package booking

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	bookingsvc "github.com/EgorLis/hotel-booking/internal/booking"
	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/logx"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	v1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1"
)

type Handler struct {
	Log     *log.Logger
	Service *bookingsvc.Service
}

type addBookingRequest struct {
	GuestFullName string      `json:"guestFullName"`
	GuestEmail    string      `json:"guestEmail"`
	Adults        int         `json:"numOfAdults"`
	Children      int         `json:"numOfChildren"`
	CheckIn       domain.Date `json:"checkInDate"`
	CheckOut      domain.Date `json:"checkOutDate"`
}

// List godoc
// @Summary     Get all bookings
// @Description Все брони (только для ROLE_ADMIN).
// @Tags        bookings
// @Produce     json
// @Success     200 {array} domain.Booking
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/bookings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "booking.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	list, err := h.Service.ListBookings(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "count", len(list))
	v1.WriteJSON(w, r, http.StatusOK, list)
}

// ByConfirmationCode godoc
// @Summary     Get booking by confirmation code
// @Tags        bookings
// @Produce     json
// @Param       code path string true "confirmation code"
// @Success     200 {object} domain.Booking
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/bookings/confirmation-code/{code} [get]
func (h *Handler) ByConfirmationCode(w http.ResponseWriter, r *http.Request) {
	const op = "booking.by_code"
	reqID := mw.RequestIDFromCtx(r.Context())
	code := r.PathValue("code")

	b, err := h.Service.BookingByConfirmationCode(r.Context(), code)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "code", code)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "booking_id", b.ID)
	v1.WriteJSON(w, r, http.StatusOK, b)
}

// ByEmail godoc
// @Summary     Get bookings by guest email
// @Tags        bookings
// @Produce     json
// @Param       email path string true "guest email"
// @Success     200 {array} domain.Booking
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/bookings/email/{email} [get]
func (h *Handler) ByEmail(w http.ResponseWriter, r *http.Request) {
	const op = "booking.by_email"
	reqID := mw.RequestIDFromCtx(r.Context())
	email := r.PathValue("email")

	list, err := h.Service.BookingsByEmail(r.Context(), email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "email", email)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "count", len(list))
	v1.WriteJSON(w, r, http.StatusOK, list)
}

// Add godoc
// @Summary     Add booking
// @Description Создаёт бронь, если даты свободны. Код подтверждения присваивается при принятии.
// @Tags        bookings
// @Accept      json
// @Produce     json
// @Param       roomID path int true "room id"
// @Param       request body addBookingRequest true "booking"
// @Success     201 {object} domain.Booking
// @Failure     400 {object} v1.ErrorObject
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/bookings/rooms/{roomID} [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "booking.add"
	reqID := mw.RequestIDFromCtx(r.Context())

	roomID, err := strconv.ParseInt(r.PathValue("roomID"), 10, 64)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad room id", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var req addBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.GuestEmail == "" || req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		logx.Error(h.Log, reqID, op, "missing fields", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	b := domain.Booking{
		GuestFullName: req.GuestFullName,
		GuestEmail:    req.GuestEmail,
		Adults:        req.Adults,
		Children:      req.Children,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
	}

	saved, err := h.Service.AddBooking(r.Context(), roomID, b)
	if err != nil {
		logx.Error(h.Log, reqID, op, "add failed", err, "room_id", roomID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "booking_id", saved.ID, "code", saved.ConfirmationCode)
	v1.WriteJSON(w, r, http.StatusCreated, saved)
}

// Delete godoc
// @Summary     Delete booking
// @Tags        bookings
// @Produce     plain
// @Param       bookingID path int true "booking id"
// @Success     200 {string} string "Booking deleted successfully"
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/bookings/{bookingID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "booking.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("bookingID"), 10, 64)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad booking id", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Service.DeleteBooking(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "booking_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "booking_id", id)
	v1.WriteText(w, r, http.StatusOK, "Booking deleted successfully")
}
