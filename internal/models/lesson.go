package models

import "time"

// Lesson представляет урок, принадлежащий ровно одному курсу.
// Урок удаляется каскадно вместе с курсом. VideoLink принимает только
// ссылки на разрешенный видеохостинг (правило youtube в валидаторе).
type Lesson struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"course_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	VideoLink   *string   `json:"video_link,omitempty"`
	OwnerUID    *string   `json:"owner_uid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DummyLesson используется для приёма данных урока из JSON-запроса.
type DummyLesson struct {
	CourseID    int    `json:"course_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty"`
	VideoLink   string `json:"video_link,omitempty" validate:"omitempty,youtube"`
}
