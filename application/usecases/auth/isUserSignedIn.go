package auth_usecases

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt"
	"zsecure.app/infrastructure/auth"
	"zsecure.app/infrastructure/database/repository/cache"
	"zsecure.app/infrastructure/logger"
)

// UserAuthResult represents the result of session validation
type UserAuthResult struct {
	IsAuthenticated bool
	UserID          string
	Email           string
	UserAgent       string
	DeviceID        string
	ErrorMessage    string
}

// IsUserSignedIn validates a session token against its claims and the server
// side session entry. Valid requests slide the session window forward.
func IsUserSignedIn(ctx any, authToken string, deviceID string) UserAuthResult {
	result := UserAuthResult{
		IsAuthenticated: false,
	}

	if authToken == "" {
		result.ErrorMessage = "missing auth token"
		return result
	}

	validAccessToken, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		result.ErrorMessage = "this session has expired"
		return result
	}
	if !validAccessToken.Valid {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	authTokenClaims := validAccessToken.Claims.(jwt.MapClaims)

	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		logger.Warning("attempt to access account with tampered jwt", logger.LoggerOptions{
			Key:  "token claims",
			Data: validAccessToken,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if authTokenClaims["deviceID"] != deviceID {
		logger.Warning("client made request using device id different from that in access token", logger.LoggerOptions{
			Key:  "token device id",
			Data: authTokenClaims["deviceID"],
		}, logger.LoggerOptions{
			Key:  "request device id",
			Data: deviceID,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if authTokenClaims["tokenType"] != "access_token" {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	userID, _ := authTokenClaims["userID"].(string)
	sessionKey := fmt.Sprintf("%s-session", userID)
	sessionDevice := cache.Cache.FindOne(sessionKey)
	if sessionDevice == nil || *sessionDevice != deviceID {
		result.ErrorMessage = "this session has expired"
		return result
	}
	cache.Cache.ExtendTTL(sessionKey, SessionTTL)

	result.IsAuthenticated = true
	result.UserID = userID
	result.Email, _ = authTokenClaims["email"].(string)
	result.UserAgent, _ = authTokenClaims["userAgent"].(string)
	result.DeviceID = deviceID

	return result
}
