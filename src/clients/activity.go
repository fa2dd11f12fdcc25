package clients

import (
	"encoding/json"
	"fmt"
	"time"

	"auth-session-svc/src/internal/config"
	"auth-session-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// ActivityPublisher emits auth activity events (login, logout, preference
// changes) for downstream consumers. Publishing is best-effort: a broker
// failure must never fail the request that triggered it.
type ActivityPublisher interface {
	PublishActivity(username, sessionID, serviceName, action, ipAddress, userAgent string) error
}

type amqpActivityPublisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewActivityPublisher(cfg *config.Configuration, channel *amqp.Channel) ActivityPublisher {
	return &amqpActivityPublisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

func (p *amqpActivityPublisher) PublishActivity(username, sessionID, serviceName, action, ipAddress, userAgent string) error {
	message := models.ActivityMessage{
		Username:    username,
		SessionID:   sessionID,
		ServiceName: serviceName,
		Action:      action,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Timestamp:   time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal activity message: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish activity message")
		return fmt.Errorf("failed to publish activity message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"username":    username,
		"service":     serviceName,
		"action":      action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Activity message published")

	return nil
}

// NoopActivityPublisher is used when no broker is configured.
type NoopActivityPublisher struct{}

func (NoopActivityPublisher) PublishActivity(_, _, _, _, _, _ string) error {
	return nil
}
