package domain

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Пароль: минимум 8 символов. Детальные требования (регистры/цифры)
// оставлены клиентской стороне.
func ValidPassword(s string) bool {
	return len(s) >= 8
}
