package controller

import (
	"net/http"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/interfaces"
	auth_usecases "zsecure.app/application/usecases/auth"
	"zsecure.app/application/utils"
	server_response "zsecure.app/infrastructure/serverResponse"
	"zsecure.app/infrastructure/validator"
)

func RegisterUser(ctx *interfaces.ApplicationContext[dto.RegisterUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, *ctx.DeviceID)
		return
	}
	err := auth_usecases.RegisterUserUseCase(ctx.Ctx, ctx.Body, ctx.DeviceID, &ctx.UserAgent, utils.GetStringPointer(ctx.GetStringContextData("IPAddress")))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "account enrolled", nil, nil, nil, ctx.DeviceID)
}

func AuthenticateFace(ctx *interfaces.ApplicationContext[dto.FaceAuthDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, *ctx.DeviceID)
		return
	}
	token, err := auth_usecases.FaceAuthenticationUseCase(ctx.Ctx, ctx.Body, ctx.DeviceID, ctx.DeviceName, &ctx.UserAgent, utils.GetStringPointer(ctx.GetStringContextData("IPAddress")))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "authentication complete", map[string]any{
		"token": token,
	}, nil, nil, ctx.DeviceID)
}

func Logout(ctx *interfaces.ApplicationContext[any]) {
	auth_usecases.LogoutUseCase(ctx.Ctx, ctx.GetStringContextData("UserID"), utils.GetStringPointer(ctx.GetStringContextData("IPAddress")), utils.GetStringPointer(ctx.GetStringContextData("UserAgent")))
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "signed out", nil, nil, nil, ctx.DeviceID)
}
