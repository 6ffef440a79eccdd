package security_usecases

import (
	"context"
	"encoding/json"
	"time"

	"zsecure.app/application/repository"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/logger"
	messagequeue "zsecure.app/infrastructure/message_queue"
	queue_tasks "zsecure.app/infrastructure/message_queue/tasks"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

// RecordSecurityEvent persists an entry on the account audit trail. Failures
// are logged but never surfaced to the caller so auditing cannot block the
// request path.
func RecordSecurityEvent(userID *string, eventType string, description string, severity entities.SecurityEventSeverity, ipAddress *string, userAgent *string) {
	securityEventRepo := repository.SecurityEventRepo()
	_, err := securityEventRepo.CreateOne(context.TODO(), entities.SecurityEvent{
		UserID:      userID,
		EventType:   eventType,
		Description: description,
		Severity:    severity,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})
	if err != nil {
		logger.Error("failed to record security event", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "eventType",
			Data: eventType,
		})
	}
}

// AlertUser queues a security alert email for the account owner.
func AlertUser(email string, description string, ipAddress *string) {
	payload, err := json.Marshal(queue_tasks.EmailPayload{
		To:       email,
		Subject:  "Security alert on your account",
		Template: "security_alert",
		Opts: map[string]any{
			"Description": description,
			"OccurredAt":  time.Now().UTC().Format(time.RFC1123),
			"IPAddress":   ipAddress,
		},
	})
	if err != nil {
		logger.Error("failed to marshal security alert payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  payload,
		Priority: mq_types.High,
	})
}
