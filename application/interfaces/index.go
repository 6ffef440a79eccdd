package interfaces

import (
	"net/http"
)

// ApplicationContext is the transport-agnostic request context passed into
// usecases and controllers. T is the parsed request body type.
type ApplicationContext[T interface{}] struct {
	Body       *T
	Ctx        interface{}
	Keys       map[string]any
	Header     http.Header
	DeviceID   *string
	UserAgent  string
	DeviceName string
	Param      map[string]any
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	value := ac.GetContextData(key)
	if value == nil {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func (ac *ApplicationContext[T]) GetParameter(key string) any {
	if ac.Param == nil {
		return nil
	}
	return ac.Param[key]
}
