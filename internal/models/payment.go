package models

import "time"

// Способы оплаты.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
)

// Payment представляет запись об оплате курса или урока.
// Инвариант: заполнено ровно одно из полей PaidCourseID и PaidLessonID,
// он продублирован CHECK-ограничением в базе.
type Payment struct {
	ID            int       `json:"id"`
	UserUID       string    `json:"user_uid"`
	PaidCourseID  *int      `json:"paid_course_id,omitempty"`
	PaidLessonID  *int      `json:"paid_lesson_id,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentDate   time.Time `json:"payment_date"`
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
// Проверка "ровно одна ссылка" выполняется в бизнес-логике.
type DummyPayment struct {
	PaidCourseID  *int    `json:"paid_course_id,omitempty" validate:"omitempty,gt=0"`
	PaidLessonID  *int    `json:"paid_lesson_id,omitempty" validate:"omitempty,gt=0"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash transfer"`
}

// PaymentFilter представляет параметры фильтрации списка платежей,
// которые передаются в слой доступа к данным.
type PaymentFilter struct {
	PaidCourseID  *int
	PaidLessonID  *int
	PaymentMethod *string
	DateFrom      *time.Time
	DateTo        *time.Time
	AmountMin     *float64
	AmountMax     *float64
	OrderBy       string // payment_date или amount, префикс "-" для убывания
}
