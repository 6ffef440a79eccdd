package biometric

import (
	"os"

	"zsecure.app/infrastructure/network"
)

// FaceModelService is the contract the platform requires from the face
// model: a fixed-length numeric encoding for an image. Landmark frames for
// liveness come straight from the capture client, not through here.
type FaceModelService interface {
	ExtractEncoding(image *string) (FaceEncoding, error)
}

var FaceModel FaceModelService

func InitialiseFaceModel() {
	FaceModel = &RemoteFaceModel{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("FACE_MODEL_BASE_URL"),
		},
	}
}
