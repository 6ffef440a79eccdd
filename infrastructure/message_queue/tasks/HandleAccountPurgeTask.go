package queue_tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"zsecure.app/application/repository"
	"zsecure.app/infrastructure/logger"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

var HandleAccountPurgeTaskName mq_types.Queues = "account_purge"

type AccountPurgePayload struct {
	UserID string
}

// HandleAccountPurgeTask permanently removes a deactivated account and its
// audit trail after the grace period. Accounts reactivated by support
// before the task fires are skipped.
func HandleAccountPurgeTask(ctx context.Context, t *asynq.Task) error {
	var payload AccountPurgePayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling account purge payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	userRepo := repository.UserRepo()
	user, err := userRepo.FindByID(payload.UserID)
	if err != nil {
		return err
	}
	if user == nil || !user.Deactivated {
		logger.Info("account purge skipped", logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		})
		return nil
	}
	operationRepo := repository.OperationRepo()
	if _, err = operationRepo.DeleteManyByFilter(map[string]any{
		"userID": payload.UserID,
	}); err != nil {
		return err
	}
	securityEventRepo := repository.SecurityEventRepo()
	if _, err = securityEventRepo.DeleteManyByFilter(map[string]any{
		"userID": payload.UserID,
	}); err != nil {
		return err
	}
	if _, err = userRepo.DeleteByID(payload.UserID); err != nil {
		return err
	}
	logger.Info("deactivated account purged", logger.LoggerOptions{
		Key:  "userID",
		Data: payload.UserID,
	})
	return nil
}
