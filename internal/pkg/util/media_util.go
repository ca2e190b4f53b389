package util

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// GetSafeContentType 根据文件头探测真实类型，读取后将 reader 复位到开头
func GetSafeContentType(r io.ReadSeeker) (contentType string, ext string, err error) {
	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to detect content type: %w", err)
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", "", err
	}
	return mime.String(), mime.Extension(), nil
}
