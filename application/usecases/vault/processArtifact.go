package vault_usecases

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/constants"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/repository"
	auth_usecases "zsecure.app/application/usecases/auth"
	security_usecases "zsecure.app/application/usecases/security"
	"zsecure.app/application/utils"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/cryptography"
	fileupload "zsecure.app/infrastructure/file_upload"
	"zsecure.app/infrastructure/liveness"
	"zsecure.app/infrastructure/logger"
	messagequeue "zsecure.app/infrastructure/message_queue"
	queue_tasks "zsecure.app/infrastructure/message_queue/tasks"
	mq_types "zsecure.app/infrastructure/message_queue/types"
)

// ProcessArtifactResult is returned to the controller after a vault round.
type ProcessArtifactResult struct {
	Mode         entities.OperationType `json:"mode"`
	FileName     string                 `json:"fileName"`
	Data         string                 `json:"data"`
	ArtifactName *string                `json:"artifactName"`
}

// ProcessArtifactUseCase runs one protect-or-unlock round. The direction is
// detected from the payload itself: recognised packages are decrypted,
// anything else is encrypted. Every round demands a fresh liveness pass and
// face match before the per-request key is derived, and the key never
// outlives the request.
func ProcessArtifactUseCase(ctx any, payload *dto.ProcessArtifactDTO, userID string, deviceID *string, userAgent *string, ipAddress *string) (*ProcessArtifactResult, error) {
	userRepo := repository.UserRepo()
	user, err := userRepo.FindByID(userID)
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "account not found", deviceID)
		return nil, errors.New("")
	}
	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		apperrors.ForbiddenError(ctx, "account locked due to repeated failed attempts", utils.GetUIntPointer(constants.ACCOUNT_LOCKED), *deviceID)
		return nil, errors.New("")
	}

	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		apperrors.ErrorProcessingPayload(ctx, deviceID)
		return nil, err
	}

	mode := entities.OperationEncrypt
	if cryptography.IsPackage(data) {
		mode = entities.OperationDecrypt
	}

	presence, presenceErr := auth_usecases.VerifyFacePresence(utils.RequestContext(ctx), user, payload.FaceImage, payload.Frames)
	if presence == nil {
		recordOperation(userID, mode, payload.FileName, int64(len(data)), nil, false, utils.GetStringPointer("presence verification error"))
		apperrors.UnknownError(ctx, presenceErr, nil, *deviceID)
		return nil, presenceErr
	}
	if !canDerive(presence.Verdict, presence.Matched, presenceErr) {
		recordOperation(userID, mode, payload.FileName, int64(len(data)), nil, false, failureReason(presence, presenceErr))
		if !presence.Verdict.Passed {
			security_usecases.RecordSecurityEvent(&user.ID, "liveness_failed", fmt.Sprintf("liveness checks did not pass during %s", mode), entities.SeverityWarning, ipAddress, userAgent)
			if errors.Is(presenceErr, liveness.ErrLivenessTimeout) {
				apperrors.CustomError(ctx, "liveness capture took too long. try again.", utils.GetUIntPointer(constants.LIVENESS_CHECK_TIMEOUT), *deviceID)
				return nil, presenceErr
			}
			apperrors.CustomError(ctx, "we could not confirm a live face. try again in better lighting.", utils.GetUIntPointer(constants.LIVENESS_CHECK_FAILED), *deviceID)
			return nil, errors.New("")
		}
		auth_usecases.RecordFailedAttempt(user, fmt.Sprintf("face mismatch during %s operation", mode), ipAddress, userAgent)
		apperrors.CustomError(ctx, "face does not match the enrolled reference", utils.GetUIntPointer(constants.FACE_MISMATCH), *deviceID)
		return nil, errors.New("")
	}

	key, err := cryptography.DeriveKey(presence.Enrolled, user.Email, user.AccountSalt)
	if err != nil {
		recordOperation(userID, mode, payload.FileName, int64(len(data)), nil, false, utils.GetStringPointer("key derivation failed"))
		apperrors.FatalServerError(ctx, err, *deviceID)
		return nil, err
	}

	var output []byte
	var artifactName *string
	switch mode {
	case entities.OperationDecrypt:
		output, err = cryptography.DecryptPackage(data, key)
		if err != nil {
			reason := utils.GetStringPointer(err.Error())
			recordOperation(userID, mode, payload.FileName, int64(len(data)), nil, false, reason)
			if errors.Is(err, cryptography.ErrIntegrity) {
				security_usecases.RecordSecurityEvent(&user.ID, "integrity_check_failed", "package failed authentication during unlock", entities.SeverityCritical, ipAddress, userAgent)
				security_usecases.AlertUser(user.Email, "an image failed its integrity check during unlock. it may have been tampered with.", ipAddress)
				apperrors.CustomError(ctx, "this package failed its integrity check and cannot be unlocked", utils.GetUIntPointer(constants.INTEGRITY_CHECK_FAILED), *deviceID)
				return nil, err
			}
			apperrors.CustomError(ctx, "unsupported or corrupted package", utils.GetUIntPointer(constants.UNSUPPORTED_ARTIFACT), *deviceID)
			return nil, err
		}
	default:
		output, err = cryptography.EncryptPackage(data, key)
		if err != nil {
			recordOperation(userID, mode, payload.FileName, int64(len(data)), nil, false, utils.GetStringPointer(err.Error()))
			apperrors.ClientError(ctx, "could not protect this file", nil, nil, *deviceID)
			return nil, err
		}
		artifactName = archiveArtifact(output)
	}

	operation := recordOperation(userID, mode, payload.FileName, int64(len(data)), artifactName, true, nil)
	if operation != nil && artifactName != nil {
		scheduleArtifactCleanup(*artifactName, operation.ID)
	}

	return &ProcessArtifactResult{
		Mode:         mode,
		FileName:     payload.FileName,
		Data:         base64.StdEncoding.EncodeToString(output),
		ArtifactName: artifactName,
	}, nil
}

func failureReason(presence *auth_usecases.PresenceResult, err error) *string {
	if err != nil {
		return utils.GetStringPointer(err.Error())
	}
	if presence.Verdict != nil && presence.Verdict.Reason != nil {
		return presence.Verdict.Reason
	}
	if !presence.Matched {
		return utils.GetStringPointer("face mismatch")
	}
	return nil
}

func recordOperation(userID string, mode entities.OperationType, fileName string, fileSize int64, artifactName *string, success bool, errorMessage *string) *entities.Operation {
	operationRepo := repository.OperationRepo()
	operation, err := operationRepo.CreateOne(context.TODO(), entities.Operation{
		UserID:       userID,
		Type:         mode,
		FileName:     fileName,
		FileSize:     fileSize,
		ArtifactName: artifactName,
		Success:      success,
		ErrorMessage: errorMessage,
	})
	if err != nil {
		logger.Error("failed to record vault operation", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		return nil
	}
	return operation
}

// archiveArtifact uploads the freshly protected package to blob storage so
// the client can re-download it later. Archival is best effort; the package
// is still returned inline when the upload fails.
func archiveArtifact(packageBytes []byte) *string {
	name := fmt.Sprintf("%s.zsec", utils.GenerateULIDString())
	if err := fileupload.FileUploader.UploadFile(name, packageBytes); err != nil {
		logger.Error("failed to archive artifact", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	return &name
}

func scheduleArtifactCleanup(artifactName string, operationID string) {
	retention := int64(86400)
	if fromEnv := os.Getenv("ARTIFACT_RETENTION_SECS"); fromEnv != "" {
		if parsed, err := strconv.ParseInt(fromEnv, 10, 64); err == nil && parsed > 0 {
			retention = parsed
		}
	}
	payload, err := json.Marshal(queue_tasks.ArtifactCleanupPayload{
		ArtifactName: artifactName,
		OperationID:  operationID,
	})
	if err != nil {
		logger.Error("failed to marshal artifact cleanup payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:      queue_tasks.HandleArtifactCleanupTaskName,
		Payload:   payload,
		Priority:  mq_types.Low,
		ProcessIn: time.Duration(retention),
	})
}
