package face_usecases

import (
	"errors"
	"time"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/constants"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/repository"
	security_usecases "zsecure.app/application/usecases/security"
	"zsecure.app/application/utils"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/biometric"
	"zsecure.app/infrastructure/cryptography"
	"zsecure.app/infrastructure/liveness"
)

// UpdateFaceUseCase re-enrolls the reference face. The account salt is kept
// so the key schedule input only changes through the encoding itself, and
// the caller is warned that artifacts protected under the previous
// enrollment can no longer be unlocked.
func UpdateFaceUseCase(ctx any, payload *dto.UpdateFaceDTO, userID string, deviceID *string, userAgent *string, ipAddress *string) error {
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

	verdict, livenessErr := liveness.ReplayFrames(utils.RequestContext(ctx), liveness.ProfileFromEnv(), payload.Frames)
	if verdict == nil && livenessErr != nil {
		apperrors.UnknownError(ctx, livenessErr, nil, *deviceID)
		return livenessErr
	}
	if verdict == nil || !verdict.Passed {
		security_usecases.RecordSecurityEvent(&user.ID, "liveness_failed", "liveness checks did not pass during re-enrollment", entities.SeverityWarning, ipAddress, userAgent)
		if errors.Is(livenessErr, liveness.ErrLivenessTimeout) {
			apperrors.CustomError(ctx, "liveness capture took too long. try again.", utils.GetUIntPointer(constants.LIVENESS_CHECK_TIMEOUT), *deviceID)
			return livenessErr
		}
		apperrors.CustomError(ctx, "we could not confirm a live face. try again in better lighting.", utils.GetUIntPointer(constants.LIVENESS_CHECK_FAILED), *deviceID)
		return errors.New("")
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

	now := time.Now()
	_, err = userRepo.UpdatePartialByID(user.ID, map[string]any{
		"faceBlob":       faceBlob,
		"faceEnrolledAt": now,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return err
	}

	description := "reference face was re-enrolled. previously protected images can no longer be unlocked with the new enrollment."
	security_usecases.RecordSecurityEvent(&user.ID, "face_reenrolled", description, entities.SeverityCritical, ipAddress, userAgent)
	security_usecases.AlertUser(user.Email, description, ipAddress)
	return nil
}
