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

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.RegisterUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, utils.GetStringPointer(ctx.GetHeader("X-Device-Id")))
				return
			}
			controller.RegisterUser(&interfaces.ApplicationContext[dto.RegisterUserDTO]{
				Ctx:       ctx,
				Body:      &body,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
			})
		})

		authRouter.POST("/face", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FaceAuthDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, utils.GetStringPointer(ctx.GetHeader("X-Device-Id")))
				return
			}
			controller.AuthenticateFace(&interfaces.ApplicationContext[dto.FaceAuthDTO]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       appContext.Keys,
				DeviceID:   appContext.DeviceID,
				UserAgent:  appContext.UserAgent,
				DeviceName: appContext.DeviceName,
			})
		})

		authRouter.POST("/logout", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.Logout(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
