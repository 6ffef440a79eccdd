package dto

import (
	"zsecure.app/infrastructure/liveness"
)

type ProcessArtifactDTO struct {
	FileName  string                   `json:"fileName" validate:"required,max=255"`
	Data      string                   `json:"data" validate:"required"`
	FaceImage string                   `json:"faceImage" validate:"required"`
	Frames    []liveness.LandmarkFrame `json:"frames" validate:"required,min=1,max=60"`
}

type OperationHistoryFilterDTO struct {
	Type     *string `json:"type" validate:"omitempty,oneof=encrypt decrypt"`
	PageSize int64   `json:"pageSize" validate:"omitempty,min=1,max=100"`
	LastID   *string `json:"lastID" validate:"omitempty,max=50"`
}
