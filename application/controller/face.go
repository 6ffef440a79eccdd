package controller

import (
	"net/http"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/interfaces"
	account_usecases "zsecure.app/application/usecases/account"
	face_usecases "zsecure.app/application/usecases/face"
	"zsecure.app/application/utils"
	server_response "zsecure.app/infrastructure/serverResponse"
	"zsecure.app/infrastructure/validator"
)

func UpdateFace(ctx *interfaces.ApplicationContext[dto.UpdateFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, *ctx.DeviceID)
		return
	}
	err := face_usecases.UpdateFaceUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("UserID"), ctx.DeviceID, utils.GetStringPointer(ctx.GetStringContextData("UserAgent")), utils.GetStringPointer(ctx.GetStringContextData("IPAddress")))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face re-enrolled. previously protected images can no longer be unlocked.", nil, nil, nil, ctx.DeviceID)
}

func DeactivateAccount(ctx *interfaces.ApplicationContext[dto.DeactivateAccountDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, *ctx.DeviceID)
		return
	}
	err := account_usecases.DeactivateAccountUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("UserID"), ctx.DeviceID, utils.GetStringPointer(ctx.GetStringContextData("UserAgent")), utils.GetStringPointer(ctx.GetStringContextData("IPAddress")))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "account deactivated", nil, nil, nil, ctx.DeviceID)
}
