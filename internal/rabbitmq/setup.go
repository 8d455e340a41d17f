// Package rabbitmq содержит подключение к брокеру, объявление очередей
// уведомлений, публикацию и потребление сообщений.
package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// NotificationsExchange имя direct-exchange для всех почтовых уведомлений.
const NotificationsExchange = "notifications"

// Очереди почтовых уведомлений и их routing key.
const (
	QueueCourseUpdated = "notification.course-updated"
	QueueCourseWelcome = "notification.course-welcome"
	QueueUserWelcome   = "notification.user-welcome"
	QueueAdmin         = "notification.admin"

	RoutingKeyCourseUpdated = "course.updated"
	RoutingKeyCourseWelcome = "course.welcome"
	RoutingKeyUserWelcome   = "user.welcome"
	RoutingKeyAdminReport   = "admin.report"
)

// QueueConfig описывает очередь и привязанный к ней routing key.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает конфигурацию очередей уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueCourseUpdated, RoutingKey: RoutingKeyCourseUpdated},
		{QueueName: QueueCourseWelcome, RoutingKey: RoutingKeyCourseWelcome},
		{QueueName: QueueUserWelcome, RoutingKey: RoutingKeyUserWelcome},
		{QueueName: QueueAdmin, RoutingKey: RoutingKeyAdminReport},
	}
}

// SetupChannel открывает канал, объявляет exchange и очереди уведомлений
// и привязывает их по routing key.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		NotificationsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			NotificationsExchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
