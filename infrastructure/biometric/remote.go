package biometric

import (
	"encoding/json"
	"errors"
	"fmt"

	"zsecure.app/application/utils"
	"zsecure.app/infrastructure/logger"
	"zsecure.app/infrastructure/network"
)

// RemoteFaceModel talks to the face model sidecar over HTTP.
type RemoteFaceModel struct {
	Network *network.NetworkController
}

type extractEncodingResponse struct {
	Success  bool      `json:"success"`
	Encoding []float64 `json:"encoding"`
	Error    *string   `json:"error"`
}

func (service *RemoteFaceModel) ExtractEncoding(image *string) (FaceEncoding, error) {
	if image == nil {
		return nil, errors.New("no image supplied")
	}
	if _, err := utils.DecodeBase64Image(*image); err != nil {
		return nil, fmt.Errorf("image is not valid base64: %w", err)
	}
	response, statusCode, err := service.Network.Post("/extract-encoding", &map[string]string{}, map[string]any{
		"image": image,
	})
	if err != nil {
		logger.Error("error extracting face encoding", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if statusCode == nil || *statusCode != 200 {
		return nil, fmt.Errorf("face model returned status %v", statusCode)
	}

	var parsed extractEncodingResponse
	if err := json.Unmarshal(*response, &parsed); err != nil {
		logger.Error("error parsing face model response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !parsed.Success {
		message := "face model could not process image"
		if parsed.Error != nil {
			message = *parsed.Error
		}
		return nil, errors.New(message)
	}

	encoding := FaceEncoding(parsed.Encoding)
	if err := encoding.Validate(); err != nil {
		return nil, err
	}
	return encoding, nil
}
