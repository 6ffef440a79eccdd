package middlewares

import (
	"github.com/gin-gonic/gin"
	"zsecure.app/application/interfaces"
	"zsecure.app/application/middlewares"
)

func UserAgentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.UserAgentMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Keys:   ctx.Keys,
			Header: ctx.Request.Header,
		})
		if next {
			appContext.SetContextData("IPAddress", ctx.ClientIP())
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
