package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "zsecure.app/application/appErrors"
	"zsecure.app/application/controller"
	"zsecure.app/application/controller/dto"
	"zsecure.app/application/interfaces"
	"zsecure.app/application/utils"
	middlewares "zsecure.app/infrastructure/middleware"
)

func FaceRouter(router *gin.RouterGroup) {
	faceRouter := router.Group("/face")
	faceRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		faceRouter.POST("/update", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, utils.GetStringPointer(ctx.GetHeader("X-Device-Id")))
				return
			}
			controller.UpdateFace(&interfaces.ApplicationContext[dto.UpdateFaceDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}

func AccountRouter(router *gin.RouterGroup) {
	accountRouter := router.Group("/account")
	accountRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		accountRouter.DELETE("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.DeactivateAccountDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, utils.GetStringPointer(ctx.GetHeader("X-Device-Id")))
				return
			}
			controller.DeactivateAccount(&interfaces.ApplicationContext[dto.DeactivateAccountDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
