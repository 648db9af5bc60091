package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// fileClient talks to the external file storage service. Stored documents
// only carry opaque keys; this client turns them into URLs and deletes them.
func fileClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.FileApiURL).
		SetHeader("X-Api-Key", config.AppConfig.FileApiKey)
}

// ResolveFileURL resolves a stored file key to a serving URL.
func ResolveFileURL(ctx context.Context, key string) (string, error) {
	resp, err := fileClient().R().
		SetContext(ctx).
		Get("/" + key + "/url")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("file service returned %d for key %s", resp.StatusCode(), key)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", err
	}
	return body.URL, nil
}

// DeleteFile deletes a file by key. A missing key is treated as already
// deleted so cascade retries stay idempotent.
func DeleteFile(ctx context.Context, key string) error {
	resp, err := fileClient().R().
		SetContext(ctx).
		Delete("/" + key)
	if err != nil {
		return err
	}
	switch resp.StatusCode() {
	case 200, 204, 404:
		return nil
	}
	return fmt.Errorf("file service returned %d deleting key %s", resp.StatusCode(), key)
}
