package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"zsecure.app/application/interfaces"
	"zsecure.app/application/utils"
)

func TestForwardedContextCarriesAccumulatedData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest("POST", "/api/v1/vault/process", nil)

	saved := &interfaces.ApplicationContext[any]{
		Ctx:      ginCtx,
		Header:   ginCtx.Request.Header,
		DeviceID: utils.GetStringPointer("device-1"),
	}
	saved.SetContextData("IPAddress", "203.0.113.7")
	ginCtx.Set("AppContext", saved)

	forwarded := forwardedContext(ginCtx)
	if got := forwarded.GetStringContextData("IPAddress"); got != "203.0.113.7" {
		t.Fatalf("IPAddress = %q, want the value recorded by the header middleware", got)
	}
	if forwarded.DeviceID == nil || *forwarded.DeviceID != "device-1" {
		t.Fatal("device id was not carried forward")
	}
}
