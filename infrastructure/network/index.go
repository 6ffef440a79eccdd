package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"zsecure.app/infrastructure/logger"
)

// NetworkController is a thin JSON HTTP client for the external services
// the platform talks to.
type NetworkController struct {
	BaseUrl string
	client  *http.Client
}

func (nc *NetworkController) httpClient() *http.Client {
	if nc.client == nil {
		nc.client = &http.Client{Timeout: 30 * time.Second}
	}
	return nc.client
}

func (nc *NetworkController) Post(path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s", nc.BaseUrl, path), payload)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}

	res, err := nc.httpClient().Do(req)
	if err != nil {
		logger.Error("network request failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "path",
			Data: path,
		})
		return nil, nil, err
	}
	defer res.Body.Close()

	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &response, &res.StatusCode, nil
}

func (nc *NetworkController) Get(path string, headers *map[string]string) (*[]byte, *int, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s", nc.BaseUrl, path), nil)
	if err != nil {
		return nil, nil, err
	}
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}

	res, err := nc.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &response, &res.StatusCode, nil
}
