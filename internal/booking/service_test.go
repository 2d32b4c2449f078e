package booking

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

// fakeBookingsRepo хранит брони в памяти и считает обращения.
type fakeBookingsRepo struct {
	existing    []domain.Booking
	createCalls int
	nextID      domain.BookingID
}

func (f *fakeBookingsRepo) ListBookings(context.Context) ([]domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingsRepo) BookingByConfirmationCode(_ context.Context, code string) (domain.Booking, error) {
	for _, b := range f.existing {
		if b.ConfirmationCode == code {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrBookingNotFound
}

func (f *fakeBookingsRepo) BookingsByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.existing {
		if b.GuestEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) BookingsByRoom(_ context.Context, roomID domain.RoomID) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.existing {
		if b.RoomID == roomID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) DeleteBooking(_ context.Context, id domain.BookingID) error {
	for i, b := range f.existing {
		if b.ID == id {
			f.existing = append(f.existing[:i], f.existing[i+1:]...)
			return nil
		}
	}
	return domain.ErrBookingNotFound
}

func (f *fakeBookingsRepo) CreateBooking(_ context.Context, b domain.Booking, availCheck func([]domain.Booking) error) (domain.Booking, error) {
	f.createCalls++
	var sameRoom []domain.Booking
	for _, e := range f.existing {
		if e.RoomID == b.RoomID {
			sameRoom = append(sameRoom, e)
		}
	}
	if err := availCheck(sameRoom); err != nil {
		return domain.Booking{}, err
	}
	f.nextID++
	b.ID = f.nextID
	f.existing = append(f.existing, b)
	return b, nil
}

var _ domain.BookingsRepo = (*fakeBookingsRepo)(nil)

func newTestService(repo *fakeBookingsRepo) *Service {
	return NewService(log.New(io.Discard, "", 0), repo)
}

func guestSpan(inDay, outDay int) domain.Booking {
	b := span(inDay, outDay)
	b.GuestFullName = "Ivan Petrov"
	b.GuestEmail = "ivan@example.com"
	b.Adults = 2
	b.Children = 1
	return b
}

func TestAddBookingInvalidRangeNeverTouchesStore(t *testing.T) {
	repo := &fakeBookingsRepo{}
	svc := newTestService(repo)

	_, err := svc.AddBooking(context.Background(), 1, guestSpan(14, 12))
	require.ErrorIs(t, err, domain.ErrInvalidBookingRange)
	assert.Zero(t, repo.createCalls, "store must not be consulted on invalid range")
}

func TestAddBookingAcceptedAssignsConfirmationCode(t *testing.T) {
	repo := &fakeBookingsRepo{}
	svc := newTestService(repo)

	saved, err := svc.AddBooking(context.Background(), 7, guestSpan(10, 12))
	require.NoError(t, err)

	assert.Equal(t, domain.RoomID(7), saved.RoomID)
	assert.Equal(t, 3, saved.TotalGuests)
	_, err = uuid.Parse(saved.ConfirmationCode)
	assert.NoError(t, err, "confirmation code must be a canonical uuid")
}

func TestAddBookingConflictNoMutation(t *testing.T) {
	repo := &fakeBookingsRepo{}
	svc := newTestService(repo)

	_, err := svc.AddBooking(context.Background(), 1, guestSpan(10, 12))
	require.NoError(t, err)

	_, err = svc.AddBooking(context.Background(), 1, guestSpan(10, 11))
	require.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.Len(t, repo.existing, 1)
}

func TestAddBookingOtherRoomNotConsidered(t *testing.T) {
	repo := &fakeBookingsRepo{}
	svc := newTestService(repo)

	_, err := svc.AddBooking(context.Background(), 1, guestSpan(10, 12))
	require.NoError(t, err)

	// те же даты, другая комната
	_, err = svc.AddBooking(context.Background(), 2, guestSpan(10, 12))
	assert.NoError(t, err)
}

func TestAddBookingConfirmationCodesAreUnique(t *testing.T) {
	repo := &fakeBookingsRepo{}
	svc := newTestService(repo)

	first, err := svc.AddBooking(context.Background(), 1, guestSpan(10, 12))
	require.NoError(t, err)
	second, err := svc.AddBooking(context.Background(), 1, guestSpan(13, 20))
	require.NoError(t, err)

	assert.NotEqual(t, first.ConfirmationCode, second.ConfirmationCode)
}

func TestListBookingsEmptyIsNotFound(t *testing.T) {
	svc := newTestService(&fakeBookingsRepo{})
	_, err := svc.ListBookings(context.Background())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingsByEmailEmptyIsNotFound(t *testing.T) {
	svc := newTestService(&fakeBookingsRepo{})
	_, err := svc.BookingsByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingByConfirmationCodeRoundTrip(t *testing.T) {
	repo := &fakeBookingsRepo{}
	svc := newTestService(repo)

	saved, err := svc.AddBooking(context.Background(), 1, guestSpan(10, 12))
	require.NoError(t, err)

	got, err := svc.BookingByConfirmationCode(context.Background(), saved.ConfirmationCode)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
}
