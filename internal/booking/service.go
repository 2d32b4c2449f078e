package booking

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

// Service — сценарии работы с бронями поверх репозитория.
// Проверка доступности и вставка выполняются репозиторием в одной
// транзакции под блокировкой строки комнаты.
type Service struct {
	log      *log.Logger
	bookings domain.BookingsRepo
}

func NewService(logger *log.Logger, bookings domain.BookingsRepo) *Service {
	return &Service{log: logger, bookings: bookings}
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	list, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("booking is not found: %w", domain.ErrBookingNotFound)
	}
	return list, nil
}

func (s *Service) BookingByConfirmationCode(ctx context.Context, code string) (domain.Booking, error) {
	b, err := s.bookings.BookingByConfirmationCode(ctx, code)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("booking is not found with this confirmation code %s: %w", code, err)
	}
	return b, nil
}

func (s *Service) BookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	list, err := s.bookings.BookingsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("booking is not found with this email %s: %w", email, domain.ErrBookingNotFound)
	}
	return list, nil
}

// AddBooking: предусловие по диапазону — до любого обращения к хранилищу.
// При конфликте — ErrRoomUnavailable, никаких мутаций. При принятии бронь
// получает свежий код подтверждения (uuid v4), комната помечается занятой.
func (s *Service) AddBooking(ctx context.Context, roomID domain.RoomID, b domain.Booking) (domain.Booking, error) {
	if b.CheckOut.Before(b.CheckIn) {
		return domain.Booking{}, fmt.Errorf("check out date cannot be before check in date: %w", domain.ErrInvalidBookingRange)
	}

	b.RoomID = roomID
	b.CalcTotalGuests()
	b.ConfirmationCode = uuid.NewString()

	saved, err := s.bookings.CreateBooking(ctx, b, func(existing []domain.Booking) error {
		if !IsAvailable(b, existing) {
			return fmt.Errorf("room is not available for the selected dates: %w", domain.ErrRoomUnavailable)
		}
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.log.Printf("booking accepted: room=%d code=%s [%s, %s]",
		saved.RoomID, saved.ConfirmationCode, saved.CheckIn, saved.CheckOut)
	return saved, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id domain.BookingID) error {
	return s.bookings.DeleteBooking(ctx, id)
}
