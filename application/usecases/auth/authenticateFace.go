package auth_usecases

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/constants"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/repository"
	security_usecases "zsecure.app/application/usecases/security"
	"zsecure.app/application/utils"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/auth"
	"zsecure.app/infrastructure/database/repository/cache"
	"zsecure.app/infrastructure/liveness"
	"zsecure.app/infrastructure/logger"
)

// SessionTTL is how long an issued session stays valid without activity.
const SessionTTL = 15 * time.Minute

// FaceAuthenticationUseCase authenticates a user with a live face capture.
// A session token is only issued when the liveness session passes and the
// fresh encoding matches the enrolled reference within tolerance.
func FaceAuthenticationUseCase(ctx any, payload *dto.FaceAuthDTO, deviceID *string, deviceName string, userAgent *string, ipAddress *string) (*string, error) {
	payload.Email = strings.ToLower(payload.Email)
	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(map[string]any{
		"email": payload.Email,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return nil, err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "invalid credentials", deviceID)
		return nil, errors.New("")
	}
	if user.Deactivated {
		apperrors.AuthenticationError(ctx, "this account has been deactivated", *deviceID)
		return nil, errors.New("")
	}
	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		apperrors.ForbiddenError(ctx, fmt.Sprintf("account locked due to repeated failed attempts. try again after %s", user.LockedUntil.Format(time.RFC1123)), utils.GetUIntPointer(constants.ACCOUNT_LOCKED), *deviceID)
		return nil, errors.New("")
	}

	presence, err := VerifyFacePresence(utils.RequestContext(ctx), user, payload.FaceImage, payload.Frames)
	if presence == nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return nil, err
	}
	if !presence.Verdict.Passed {
		security_usecases.RecordSecurityEvent(&user.ID, "liveness_failed", "liveness checks did not pass during authentication", entities.SeverityWarning, ipAddress, userAgent)
		if errors.Is(err, liveness.ErrLivenessTimeout) {
			apperrors.CustomError(ctx, "liveness capture took too long. try again.", utils.GetUIntPointer(constants.LIVENESS_CHECK_TIMEOUT), *deviceID)
			return nil, err
		}
		apperrors.CustomError(ctx, "we could not confirm a live face. try again in better lighting.", utils.GetUIntPointer(constants.LIVENESS_CHECK_FAILED), *deviceID)
		return nil, errors.New("")
	}
	if !presence.Matched {
		RecordFailedAttempt(user, "face did not match enrolled reference", ipAddress, userAgent)
		apperrors.CustomError(ctx, "face does not match the enrolled reference", utils.GetUIntPointer(constants.FACE_MISMATCH), *deviceID)
		return nil, errors.New("")
	}

	now := time.Now()
	devices := upsertDevice(user.Devices, entities.Device{
		ID:        *deviceID,
		Name:      deviceName,
		LastLogin: now,
	})
	_, err = userRepo.UpdatePartialByID(user.ID, map[string]any{
		"failedAttempts": 0,
		"lockedUntil":    nil,
		"lastLogin":      now,
		"devices":        devices,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err, nil, *deviceID)
		return nil, err
	}

	token, err := auth.GenerateAuthToken(auth.ClaimsData{
		Issuer:    os.Getenv("JWT_ISSUER"),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: now.Add(SessionTTL).Unix(),
		IssuedAt:  now.Unix(),
		UserAgent: *userAgent,
		DeviceID:  *deviceID,
		TokenType: "access_token",
	})
	if err != nil {
		apperrors.FatalServerError(ctx, err, *deviceID)
		return nil, err
	}
	saved := cache.Cache.CreateEntry(fmt.Sprintf("%s-session", user.ID), *deviceID, SessionTTL)
	if !saved {
		apperrors.FatalServerError(ctx, errors.New("could not persist session"), *deviceID)
		return nil, errors.New("")
	}

	security_usecases.RecordSecurityEvent(&user.ID, "authentication_succeeded", "face authentication succeeded", entities.SeverityInfo, ipAddress, userAgent)
	return token, nil
}

// RecordFailedAttempt increments the failure counter and locks the account
// once the threshold is crossed. Lockout fires a critical audit event and an
// alert email to the account owner.
func RecordFailedAttempt(user *entities.User, reason string, ipAddress *string, userAgent *string) {
	userRepo := repository.UserRepo()
	attempts := user.FailedAttempts + 1
	update := map[string]any{
		"failedAttempts": attempts,
	}
	if attempts >= constants.MAX_FAILED_ATTEMPTS {
		lockedUntil := time.Now().Add(constants.LOCKOUT_DURATION * time.Minute)
		update["lockedUntil"] = lockedUntil
		update["failedAttempts"] = 0
	}
	if _, err := userRepo.UpdatePartialByID(user.ID, update); err != nil {
		logger.Error("failed to record failed authentication attempt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
	}
	if attempts >= constants.MAX_FAILED_ATTEMPTS {
		description := fmt.Sprintf("account locked for %d minutes after %d failed verification attempts", constants.LOCKOUT_DURATION, attempts)
		security_usecases.RecordSecurityEvent(&user.ID, "account_locked", description, entities.SeverityCritical, ipAddress, userAgent)
		security_usecases.AlertUser(user.Email, description, ipAddress)
		return
	}
	security_usecases.RecordSecurityEvent(&user.ID, "verification_failed", reason, entities.SeverityWarning, ipAddress, userAgent)
}

func upsertDevice(devices []entities.Device, device entities.Device) []entities.Device {
	for i := range devices {
		if devices[i].ID == device.ID {
			devices[i].LastLogin = device.LastLogin
			devices[i].Name = device.Name
			return devices
		}
	}
	return append(devices, device)
}
