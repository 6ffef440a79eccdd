package routev1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/interfaces"
	"zsecure.app/application/utils"
	middlewares "zsecure.app/infrastructure/middleware"
)

func VaultRouter(router *gin.RouterGroup) {
	vaultRouter := router.Group("/vault")
	vaultRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		vaultRouter.POST("/process", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ProcessArtifactDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, utils.GetStringPointer(ctx.GetHeader("X-Device-Id")))
				return
			}
			controller.ProcessArtifact(&interfaces.ApplicationContext[dto.ProcessArtifactDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		vaultRouter.GET("/history", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			body := dto.OperationHistoryFilterDTO{}
			if opType := ctx.Query("type"); opType != "" {
				body.Type = &opType
			}
			if lastID := ctx.Query("lastID"); lastID != "" {
				body.LastID = &lastID
			}
			if pageSize := ctx.Query("pageSize"); pageSize != "" {
				parsed, err := strconv.ParseInt(pageSize, 10, 64)
				if err != nil {
					apperrors.ErrorProcessingPayload(ctx, utils.GetStringPointer(ctx.GetHeader("X-Device-Id")))
					return
				}
				body.PageSize = parsed
			}
			controller.OperationHistory(&interfaces.ApplicationContext[dto.OperationHistoryFilterDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
