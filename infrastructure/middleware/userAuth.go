package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"zsecure.app/application/interfaces"
	"zsecure.app/application/middlewares"
)

// forwardedContext rebuilds the application context for the authenticated
// segment of the chain, carrying over the context data accumulated by
// earlier middlewares (IPAddress, device details).
func forwardedContext(ctx *gin.Context) *interfaces.ApplicationContext[any] {
	savedCtx := (ctx.MustGet("AppContext")).(*interfaces.ApplicationContext[any])
	return &interfaces.ApplicationContext[any]{
		Ctx:      ctx,
		Keys:     savedCtx.Keys,
		Header:   ctx.Request.Header,
		DeviceID: savedCtx.DeviceID,
	}
}

func UserAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authToken := strings.TrimPrefix(ctx.Request.Header.Get("Authorization"), "Bearer ")
		appContext, next := middlewares.UserAuthenticationMiddleware(forwardedContext(ctx), authToken)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
