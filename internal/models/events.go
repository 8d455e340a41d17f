package models

// CourseUpdatedEvent публикуется при обновлении курса или его урока.
// Одно событие на обновление: рассылка по активным подписчикам
// выполняется воркером в момент обработки.
type CourseUpdatedEvent struct {
	CourseID    int    `json:"course_id"`
	CourseTitle string `json:"course_title"`
	Changes     string `json:"changes,omitempty"`
}

// CourseWelcomeEvent публикуется при подписке пользователя на курс.
type CourseWelcomeEvent struct {
	CourseID    int    `json:"course_id"`
	CourseTitle string `json:"course_title"`
	Email       string `json:"email"`
}

// UserWelcomeEvent публикуется при регистрации нового пользователя.
type UserWelcomeEvent struct {
	Email string `json:"email"`
}

// AdminReportEvent публикуется служебными задачами для рассылки
// отчетов администраторам платформы.
type AdminReportEvent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
