package utils

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetStringPointer(text string) *string {
	return &text
}

func GetBooleanPointer(data bool) *bool {
	return &data
}

func GetFloat64Pointer(data float64) *float64 {
	return &data
}

func GetUIntPointer(data uint) *uint {
	return &data
}

func GetInt64Pointer(data int64) *int64 {
	return &data
}

// RequestContext exposes the transport request context carried by the
// framework context, so long-running work can observe client disconnects.
// gin's context satisfies this once ContextWithFallback is enabled.
func RequestContext(ctx any) context.Context {
	if requestCtx, ok := ctx.(context.Context); ok {
		return requestCtx
	}
	return context.Background()
}

// DecodeBase64Image strips an optional data URL prefix before decoding.
func DecodeBase64Image(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx != -1 {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}
