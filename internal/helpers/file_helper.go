package helpers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	UploadBasePath   string
	PublicPrefix     string
}

func ImageUploadConfig(basePath string) UploadConfig {
	return UploadConfig{
		MaxSizeBytes: 5 * 1024 * 1024, // 5MB
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
		},
		UploadBasePath: basePath,
		PublicPrefix:   "/uploads",
	}
}

// UploadFile stores the file under UploadBasePath/uploadType and returns the
// URL path it is served from.
func UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, uploadType string, config UploadConfig) (string, error) {
	if fileHeader.Size > config.MaxSizeBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if !mimetype.EqualsAny(mimeType.String(), config.AllowedMimeTypes...) {
		return "", fmt.Errorf("invalid file type. Allowed types: %v", config.AllowedMimeTypes)
	}

	uploadPath := filepath.Join(config.UploadBasePath, uploadType)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.New().String() + mimeType.Extension()
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadPath, filename)); err != nil {
		return "", err
	}

	return path.Join(config.PublicPrefix, uploadType, filename), nil
}

// DeleteUpload removes a file previously returned by UploadFile. Links that do
// not point into the upload directory are left alone.
func DeleteUpload(publicPath string, config UploadConfig) error {
	rel, err := filepath.Rel(config.PublicPrefix, filepath.FromSlash(publicPath))
	if err != nil || rel == "." || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return nil
	}
	return os.Remove(filepath.Join(config.UploadBasePath, rel))
}
