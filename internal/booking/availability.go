package booking

import (
	"github.com/EgorLis/hotel-booking/internal/domain"
)

// ConflictRule — именованное граничное условие пересечения дат.
// Кандидат конфликтует с существующей бронью, если сработало хотя бы
// одно правило.
type ConflictRule struct {
	Name  string
	Match func(candidate, existing domain.Booking) bool
}

// Набор намеренно перечислен по случаям и избыточен: правило
// checkout_before_existing_checkout само покрывает несколько соседних,
// а стык дат (заезд в день чужого выезда) отклоняется. Набор консервативен
// и несимметричен; менять его — только синхронно с клиентами и стендами.
var ConflictRules = []ConflictRule{
	{
		Name: "same_check_in",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.Equal(e.CheckIn)
		},
	},
	{
		Name: "checkout_before_existing_checkout",
		Match: func(c, e domain.Booking) bool {
			return c.CheckOut.Before(e.CheckOut)
		},
	},
	{
		Name: "check_in_inside_existing",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.After(e.CheckIn) && c.CheckIn.Before(e.CheckOut)
		},
	},
	{
		Name: "starts_earlier_same_checkout",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.Before(e.CheckIn) && c.CheckOut.Equal(e.CheckOut)
		},
	},
	{
		Name: "encloses_existing",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.Before(e.CheckIn) && c.CheckOut.After(e.CheckOut)
		},
	},
	{
		Name: "exact_reversal",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.Equal(e.CheckOut) && c.CheckOut.Equal(e.CheckIn)
		},
	},
	{
		Name: "same_day_at_existing_checkout",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.Equal(e.CheckOut) && c.CheckOut.Equal(c.CheckIn)
		},
	},
	{
		// симметричный вариант exact_reversal: заезд в день чужого выезда
		Name: "check_in_at_existing_checkout",
		Match: func(c, e domain.Booking) bool {
			return c.CheckIn.Equal(e.CheckOut)
		},
	},
}

// Conflict возвращает имя первого сработавшего правила (для логов).
func Conflict(candidate, existing domain.Booking) (string, bool) {
	for _, rule := range ConflictRules {
		if rule.Match(candidate, existing) {
			return rule.Name, true
		}
	}
	return "", false
}

// IsAvailable — кандидат принимается, только если ни одна существующая
// бронь не сработала ни по одному правилу.
func IsAvailable(candidate domain.Booking, existing []domain.Booking) bool {
	for _, e := range existing {
		if _, conflict := Conflict(candidate, e); conflict {
			return false
		}
	}
	return true
}
