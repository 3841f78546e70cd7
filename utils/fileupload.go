package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxAvatarSize is 5MB in bytes
	MaxAvatarSize = 5 * 1024 * 1024
)

// allowedAvatarFormats are the accepted avatar image extensions
var allowedAvatarFormats = []string{".png", ".jpg", ".jpeg"}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateAvatarFile validates the uploaded avatar's format and size
func ValidateAvatarFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxAvatarSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxAvatarSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowed := range allowedAvatarFormats {
		if ext == allowed {
			return nil
		}
	}

	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(allowedAvatarFormats, ", ")),
	}
}
