package entities

import (
	"time"

	"zsecure.app/application/utils"
)

type OperationType string

const (
	OperationEncrypt OperationType = "encrypt"
	OperationDecrypt OperationType = "decrypt"
)

// Audit record of a single vault operation. One row per encrypt or
// decrypt request, success or failure.
type Operation struct {
	UserID       string        `bson:"userID" json:"userID"`
	Type         OperationType `bson:"type" json:"type"`
	FileName     string        `bson:"fileName" json:"fileName"`
	FileSize     int64         `bson:"fileSize" json:"fileSize"`
	ArtifactName *string       `bson:"artifactName" json:"artifactName"`
	Success      bool          `bson:"success" json:"success"`
	ErrorMessage *string       `bson:"errorMessage" json:"errorMessage"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Operation) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
