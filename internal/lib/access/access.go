// Package access содержит чистые предикаты проверки прав доступа.
//
// Предикаты вычисляются над ролью из claims JWT и владельцем объекта,
// без обращения к хранилищу. Видимость списков (свои записи против всех)
// проверяется отдельно в бизнес-логике: это два независимых условия.
package access

import "github.com/magabrotheeeer/education-platform/internal/models"

// IsModerator сообщает, является ли пользователь модератором.
func IsModerator(role string) bool {
	return role == models.RoleModerator
}

// IsNotModerator сообщает, что пользователь НЕ является модератором.
// Используется для операций создания и удаления, запрещенных модераторам.
func IsNotModerator(role string) bool {
	return role != models.RoleModerator
}

// IsAdmin сообщает, имеет ли пользователь административные права.
func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// IsOwner сообщает, является ли пользователь владельцем объекта.
// Объект без владельца (ownerUID == nil) не принадлежит никому.
func IsOwner(userUID string, ownerUID *string) bool {
	if ownerUID == nil || userUID == "" {
		return false
	}
	return *ownerUID == userUID
}

// IsOwnerOrModerator объединяет предикаты: владелец, модератор
// или администратор. Применяется для чтения и обновления объектов.
func IsOwnerOrModerator(userUID, role string, ownerUID *string) bool {
	if IsAdmin(role) || IsModerator(role) {
		return true
	}
	return IsOwner(userUID, ownerUID)
}

// SeesAll сообщает, видит ли пользователь все записи в списках.
// Обычный пользователь видит только собственные.
func SeesAll(role string) bool {
	return role == models.RoleModerator || role == models.RoleAdmin
}
