package entities

import (
	"time"

	"zsecure.app/application/utils"
)

type SecurityEventSeverity string

const (
	SeverityInfo     SecurityEventSeverity = "INFO"
	SeverityWarning  SecurityEventSeverity = "WARNING"
	SeverityCritical SecurityEventSeverity = "CRITICAL"
)

type SecurityEvent struct {
	UserID      *string               `bson:"userID" json:"userID"`
	EventType   string                `bson:"eventType" json:"eventType"`
	Description string                `bson:"description" json:"description"`
	Severity    SecurityEventSeverity `bson:"severity" json:"severity"`
	IPAddress   *string               `bson:"ipAddress" json:"ipAddress"`
	UserAgent   *string               `bson:"userAgent" json:"userAgent"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model SecurityEvent) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
