package controller

import (
	"net/http"

	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/interfaces"
	vault_usecases "zsecure.app/application/usecases/vault"
	"zsecure.app/application/utils"
	server_response "zsecure.app/infrastructure/serverResponse"
	"zsecure.app/infrastructure/validator"
)

func ProcessArtifact(ctx *interfaces.ApplicationContext[dto.ProcessArtifactDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, *ctx.DeviceID)
		return
	}
	result, err := vault_usecases.ProcessArtifactUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("UserID"), ctx.DeviceID, utils.GetStringPointer(ctx.GetStringContextData("UserAgent")), utils.GetStringPointer(ctx.GetStringContextData("IPAddress")))
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "artifact processed", result, nil, nil, ctx.DeviceID)
}

func OperationHistory(ctx *interfaces.ApplicationContext[dto.OperationHistoryFilterDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, *ctx.DeviceID)
		return
	}
	operations, err := vault_usecases.OperationHistoryUseCase(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Body, ctx.DeviceID)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "operation history", operations, nil, nil, ctx.DeviceID)
}
