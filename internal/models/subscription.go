package models

import "time"

// Subscription представляет подписку пользователя на обновления курса.
// Пара (user_uid, course_id) уникальна: повторная подписка реактивирует
// существующую запись вместо создания дубликата.
type Subscription struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	CourseID  int       `json:"course_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriberInfo описывает подписчика курса для списка подписчиков
// и рассылки уведомлений.
type SubscriberInfo struct {
	UserUID      string    `json:"user_uid"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
