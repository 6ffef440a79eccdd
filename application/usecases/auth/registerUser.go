package auth_usecases

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"strings"
	"time"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/repository"
	security_usecases "zsecure.app/application/usecases/security"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/biometric"
	"zsecure.app/infrastructure/cryptography"
	"zsecure.app/infrastructure/logger"
	messagequeue "zsecure.app/infrastructure/message_queue"
	queue_tasks "zsecure.app/infrastructure/message_queue/tasks"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

const accountSaltLength = 16

// RegisterUserUseCase enrolls a new account. The reference face encoding is
// extracted once at enrollment, encrypted under the server key and stored
// alongside a random account salt that never changes for the life of the
// enrollment.
func RegisterUserUseCase(ctx any, payload *dto.RegisterUserDTO, deviceID *string, userAgent *string, ipAddress *string) error {
	payload.Email = strings.ToLower(payload.Email)
	userRepo := repository.UserRepo()
	exists, err := userRepo.CountDocs(map[string]any{
		"email": payload.Email,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "an account with this email already exists", *deviceID)
		return errors.New("")
	}

	hashedPassword, err := cryptography.CryptoHasher.HashString(payload.Password, nil)
	if err != nil {
		logger.Error("an error occured while hashing user password", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err, *deviceID)
		return err
	}

	encoding, err := biometric.FaceModel.ExtractEncoding(&payload.FaceImage)
	if err != nil {
		apperrors.ClientError(ctx, "no usable face found in the supplied image", nil, nil, *deviceID)
		return err
	}
	encodingBlob, err := encoding.MarshalBinary()
	if err != nil {
		apperrors.FatalServerError(ctx, err, *deviceID)
		return err
	}
	faceBlob, err := cryptography.EncryptData(encodingBlob, nil)
	if err != nil {
		apperrors.FatalServerError(ctx, err, *deviceID)
		return err
	}

	accountSalt := make([]byte, accountSaltLength)
	if _, err = rand.Read(accountSalt); err != nil {
		apperrors.FatalServerError(ctx, err, *deviceID)
		return err
	}

	now := time.Now()
	created, err := userRepo.CreateOne(context.TODO(), entities.User{
		Email:          payload.Email,
		Password:       string(hashedPassword),
		AccountSalt:    accountSalt,
		FaceBlob:       faceBlob,
		FaceEnrolledAt: &now,
	})
	if err != nil {
		logger.Error("could not create user", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err, *deviceID)
		return err
	}

	security_usecases.RecordSecurityEvent(&created.ID, "account_enrolled", "account created and face enrolled", entities.SeverityInfo, ipAddress, userAgent)

	emailPayload, _ := json.Marshal(queue_tasks.EmailPayload{
		To:       payload.Email,
		Subject:  "Your enrollment is complete",
		Template: "welcome",
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  emailPayload,
		Priority: mq_types.Low,
	})
	return nil
}
