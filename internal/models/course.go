package models

import "time"

// Course представляет собой курс — основную сущность платформы.
// OwnerUID может быть nil: при удалении владельца курс сохраняется.
// StripeProductID и StripePriceID заполняются при провижининге цены
// у платежного провайдера.
type Course struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	OwnerUID        *string   `json:"owner_uid,omitempty"`
	StripeProductID *string   `json:"stripe_product_id,omitempty"`
	StripePriceID   *string   `json:"stripe_price_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DummyCourse используется для приёма данных курса из JSON-запроса,
// прежде чем конвертировать их в Course.
type DummyCourse struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// CourseWithLessons расширяет курс списком его уроков и их количеством
// для детального представления.
type CourseWithLessons struct {
	Course
	Lessons     []*Lesson `json:"lessons"`
	LessonCount int       `json:"lesson_count"`
}
