package auth

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt"
	"zsecure.app/infrastructure/database/repository/cache"
	"zsecure.app/infrastructure/logger"
)

func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":       os.Getenv("JWT_ISSUER"),
		"userID":    claimsData.UserID,
		"exp":       claimsData.ExpiresAt,
		"email":     claimsData.Email,
		"iat":       claimsData.IssuedAt,
		"deviceID":  claimsData.DeviceID,
		"userAgent": claimsData.UserAgent,
		"tokenType": claimsData.TokenType,
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			err = errors.New("invalid token signature used")
			return nil, err
		}
		logger.Error("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	return token, nil
}

func SignOutUser(ctx any, id string, reason string) {
	logger.Info("user signout initiated", logger.LoggerOptions{
		Key:  "reason",
		Data: reason,
	})
	deleted := cache.Cache.DeleteOne(id)
	if !deleted {
		logger.Error("failed to sign out user", logger.LoggerOptions{
			Key:  "id",
			Data: id,
		})
	}
}
