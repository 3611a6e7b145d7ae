package services

// Observer получает события сервисного слоя. Используется для метрик.
type Observer interface {
	LinkCreated(owned bool)
	LinkResolved(outcome string)
	CodeCollision()
	ClickRecorded(err error)
}

// Исходы разрешения короткого кода.
const (
	OutcomeRedirect    = "redirect"
	OutcomeInvalidCode = "invalid_code"
	OutcomeNotFound    = "not_found"
	OutcomeExpired     = "expired"
	OutcomeError       = "error"
)

type nopObserver struct{}

func (nopObserver) LinkCreated(bool)    {}
func (nopObserver) LinkResolved(string) {}
func (nopObserver) CodeCollision()      {}
func (nopObserver) ClickRecorded(error) {}
