package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

func span(inDay, outDay int) domain.Booking {
	return domain.Booking{
		CheckIn:  domain.NewDate(2026, 1, inDay),
		CheckOut: domain.NewDate(2026, 1, outDay),
	}
}

func TestConflictRuleNames(t *testing.T) {
	existing := span(10, 15)

	cases := []struct {
		name      string
		candidate domain.Booking
		rule      string
	}{
		{"same check-in", span(10, 20), "same_check_in"},
		{"checks out earlier", span(11, 12), "checkout_before_existing_checkout"},
		{"check-in inside existing", span(12, 20), "check_in_inside_existing"},
		{"starts earlier, same checkout", span(8, 15), "starts_earlier_same_checkout"},
		{"encloses existing", span(8, 20), "encloses_existing"},
		{"exact reversal", span(15, 10), "exact_reversal"},
		{"same-day at existing checkout", span(15, 15), "same_day_at_existing_checkout"},
		{"check-in at existing checkout", span(15, 18), "check_in_at_existing_checkout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, conflict := Conflict(tc.candidate, existing)
			require.True(t, conflict)
			assert.Equal(t, tc.rule, rule)
		})
	}
}

// Правило co < eo консервативно: свободный диапазон целиком ДО
// существующей брони всё равно отклоняется. Поведение сознательно
// сохранено, не «чинить».
func TestEarlierDisjointRangeStillRejected(t *testing.T) {
	existing := []domain.Booking{span(10, 15)}
	assert.False(t, IsAvailable(span(2, 5), existing))
}

func TestLaterDisjointRangeAccepted(t *testing.T) {
	existing := []domain.Booking{span(10, 15)}
	assert.True(t, IsAvailable(span(20, 22), existing))
}

// Заезд в день чужого выезда — конфликт, хотя интуитивно смежные брони
// могли бы сосуществовать.
func TestAdjacentCheckInRejected(t *testing.T) {
	existing := []domain.Booking{span(10, 12)}
	assert.False(t, IsAvailable(span(12, 14), existing))
}

func TestSameCheckInRejected(t *testing.T) {
	existing := []domain.Booking{span(10, 12)}
	assert.False(t, IsAvailable(span(10, 11), existing))
}

func TestNoExistingBookingsAlwaysAvailable(t *testing.T) {
	assert.True(t, IsAvailable(span(1, 31), nil))
}

func TestOneConflictAmongManyRejects(t *testing.T) {
	existing := []domain.Booking{
		span(1, 3),
		span(10, 15),
		span(20, 25),
	}
	assert.False(t, IsAvailable(span(12, 30), existing))
}
