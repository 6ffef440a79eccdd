package dto

import (
	"zsecure.app/infrastructure/liveness"
)

type RegisterUserDTO struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,password,max=72"`
	FaceImage string `json:"faceImage" validate:"required"`
}

type FaceAuthDTO struct {
	Email     string                   `json:"email" validate:"required,email,max=100"`
	FaceImage string                   `json:"faceImage" validate:"required"`
	Frames    []liveness.LandmarkFrame `json:"frames" validate:"required,min=1,max=60"`
}

type UpdateFaceDTO struct {
	Password  string                   `json:"password" validate:"required"`
	FaceImage string                   `json:"faceImage" validate:"required"`
	Frames    []liveness.LandmarkFrame `json:"frames" validate:"required,min=1,max=60"`
}

type DeactivateAccountDTO struct {
	Password string `json:"password" validate:"required"`
}
