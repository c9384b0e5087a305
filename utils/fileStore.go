package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"foerderpilot/config"
)

// BuildDocumentKey builds the storage key for an uploaded document:
// tenant-{id}/participant-{id}/{type}-{timestamp}-{rand}.{ext}
func BuildDocumentKey(tenantID, participantID uint, docType, fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("tenant-%d/participant-%d/%s-%d-%s.%s",
		tenantID, participantID, docType, time.Now().UnixMilli(), RandomSuffix(6), strings.ToLower(ext))
}

// SaveFile writes data below the configured upload root and returns the
// public URL the file is served under.
func SaveFile(data []byte, key string) (string, error) {
	path := filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return FileURL(key), nil
}

// FileURL returns the public URL for a stored key.
func FileURL(key string) string {
	if key == "" {
		return ""
	}
	return config.AppConfig.BaseURL + "/uploads/" + key
}

// DeleteFile removes a stored file. A missing file is not an error.
func DeleteFile(key string) error {
	path := filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
