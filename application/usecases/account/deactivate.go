package account_usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/repository"
	security_usecases "zsecure.app/application/usecases/security"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/auth"
	"zsecure.app/infrastructure/cryptography"
	"zsecure.app/infrastructure/logger"
	messagequeue "zsecure.app/infrastructure/message_queue"
	queue_tasks "zsecure.app/infrastructure/message_queue/tasks"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

// DeactivateAccountUseCase marks the account deactivated, kills the active
// session and schedules a permanent purge after the grace period.
func DeactivateAccountUseCase(ctx any, payload *dto.DeactivateAccountDTO, userID string, deviceID *string, userAgent *string, ipAddress *string) error {
	userRepo := repository.UserRepo()
	user, err := userRepo.FindByID(userID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "account not found", deviceID)
		return errors.New("")
	}
	if !cryptography.CryptoHasher.VerifyHashData(user.Password, payload.Password) {
		apperrors.AuthenticationError(ctx, "invalid credentials", *deviceID)
		return errors.New("")
	}

	_, err = userRepo.UpdatePartialByID(user.ID, map[string]any{
		"deactivated": true,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return err
	}

	auth.SignOutUser(ctx, fmt.Sprintf("%s-session", user.ID), "account deactivated")

	gracePeriod := int64(604800) // 7 days
	if fromEnv := os.Getenv("ACCOUNT_PURGE_GRACE_SECS"); fromEnv != "" {
		if parsed, err := strconv.ParseInt(fromEnv, 10, 64); err == nil && parsed > 0 {
			gracePeriod = parsed
		}
	}
	purgePayload, err := json.Marshal(queue_tasks.AccountPurgePayload{
		UserID: user.ID,
	})
	if err != nil {
		logger.Error("failed to marshal account purge payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	} else {
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:      queue_tasks.HandleAccountPurgeTaskName,
			Payload:   purgePayload,
			Priority:  mq_types.Low,
			ProcessIn: time.Duration(gracePeriod),
		})
	}

	description := "account was deactivated and is scheduled for permanent deletion"
	security_usecases.RecordSecurityEvent(&user.ID, "account_deactivated", description, entities.SeverityCritical, ipAddress, userAgent)
	security_usecases.AlertUser(user.Email, description, ipAddress)
	return nil
}
