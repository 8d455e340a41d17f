// Package videolink проверяет, что ссылка на видеоурок ведет на разрешенный
// видеохостинг. Допускаются только домены YouTube: основной, www, мобильная
// версия и сокращенные ссылки youtu.be.
package videolink

import "regexp"

var allowedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/`),
	regexp.MustCompile(`^https?://youtu\.be/`),
	regexp.MustCompile(`^https?://m\.youtube\.com/`),
}

// IsAllowed возвращает true, если ссылка ведет на YouTube.
// Пустая строка считается допустимой: поле опционально.
func IsAllowed(link string) bool {
	if link == "" {
		return true
	}
	for _, pattern := range allowedPatterns {
		if pattern.MatchString(link) {
			return true
		}
	}
	return false
}
