package middlewares

import (
	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/interfaces"
	auth_usecases "zsecure.app/application/usecases/auth"
)

func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authToken string) (*interfaces.ApplicationContext[any], bool) {
	deviceID := ""
	if ctx.DeviceID != nil {
		deviceID = *ctx.DeviceID
	}
	authResult := auth_usecases.IsUserSignedIn(ctx.Ctx, authToken, deviceID)

	if !authResult.IsAuthenticated {
		apperrors.AuthenticationError(ctx.Ctx, authResult.ErrorMessage, deviceID)
		return nil, false
	}

	ctx.SetContextData("UserID", authResult.UserID)
	ctx.SetContextData("Email", authResult.Email)
	ctx.SetContextData("UserAgent", authResult.UserAgent)
	ctx.SetContextData("DeviceID", authResult.DeviceID)

	return ctx, true
}
