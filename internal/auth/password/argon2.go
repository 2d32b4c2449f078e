package password

import (
	"errors"

	"github.com/alexedwards/argon2id"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type Hasher struct {
	params *argon2id.Params
}

// Параметры зафиксированы: смена меняет формат хранимых хэшей,
// старые продолжают проверяться (параметры закодированы в самом хэше).
var defaultParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

func NewDefault() *Hasher {
	return &Hasher{params: defaultParams}
}

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

var _ domain.PasswordHasher = (*Hasher)(nil)

// Hash возвращает закодированную строку формата $argon2id$v=19$m=..., которую можно хранить в БД.
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

// Verify сравнивает пароль с сохранённым хэшем.
func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
