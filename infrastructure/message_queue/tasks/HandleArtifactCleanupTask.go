package queue_tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"zsecure.app/application/repository"
	fileupload "zsecure.app/infrastructure/file_upload"
	"zsecure.app/infrastructure/logger"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

var HandleArtifactCleanupTaskName mq_types.Queues = "artifact_cleanup"

type ArtifactCleanupPayload struct {
	ArtifactName string
	OperationID  string
}

// HandleArtifactCleanupTask removes an archived artifact from blob storage
// once its retention window has elapsed and clears the reference on the
// operation record.
func HandleArtifactCleanupTask(ctx context.Context, t *asynq.Task) error {
	var payload ArtifactCleanupPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling artifact cleanup payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	exists, err := fileupload.FileUploader.CheckFileExists(payload.ArtifactName)
	if err != nil {
		return err
	}
	if exists {
		if err = fileupload.FileUploader.DeleteFile(payload.ArtifactName); err != nil {
			return err
		}
	}
	operationRepo := repository.OperationRepo()
	_, err = operationRepo.UpdatePartialByID(payload.OperationID, map[string]any{
		"artifactName": nil,
	})
	if err != nil {
		logger.Error("failed to clear artifact reference on operation", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "operationID",
			Data: payload.OperationID,
		})
		return err
	}
	logger.Info("expired artifact cleaned up", logger.LoggerOptions{
		Key:  "artifactName",
		Data: payload.ArtifactName,
	})
	return nil
}
