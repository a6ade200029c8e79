package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"agrichat/internal/utils"

	"github.com/gin-gonic/gin"
)

// Explicit audio types accepted on top of the audio/* prefix. Browsers
// record voice notes as audio/webm; mobile clients send the rest.
var allowedAudioTypes = map[string]bool{
	"audio/webm":  true,
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/wav":   true,
	"audio/ogg":   true,
	"audio/x-m4a": true,
	"audio/mp4":   true,
	"audio/aac":   true,
	"audio/flac":  true,
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func isAudioType(contentType string) bool {
	return strings.HasPrefix(contentType, "audio/") || allowedAudioTypes[contentType]
}

// imageUpload validates and reads the multipart "image" field. On a
// validation failure it writes the 400 response and returns ok=false; no
// predictor is ever invoked for a rejected upload.
func (h *Handler) imageUpload(c *gin.Context) (data []byte, file *multipart.FileHeader, ok bool) {
	return h.fileUpload(c, "image", isImageType, "Only image files are allowed")
}

// voiceUpload validates and reads the multipart "voice" field
func (h *Handler) voiceUpload(c *gin.Context) (data []byte, file *multipart.FileHeader, ok bool) {
	return h.fileUpload(c, "voice", isAudioType, "Only audio files are allowed")
}

func (h *Handler) fileUpload(c *gin.Context, field string, accepts func(string) bool, typeMsg string) ([]byte, *multipart.FileHeader, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, fmt.Sprintf("No %s file provided. Use %q as the field name in form-data", field, field))
		return nil, nil, false
	}

	contentType := file.Header.Get("Content-Type")
	if !accepts(contentType) {
		utils.Error(c, http.StatusBadRequest, fmt.Sprintf("%s. Received: %s", typeMsg, contentType))
		return nil, nil, false
	}

	if file.Size > h.maxFileSize {
		utils.Error(c, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB", h.maxFileSize/1024/1024))
		return nil, nil, false
	}

	data, err := readMultipartFile(file)
	if err != nil {
		utils.ServerError(c, "Failed to read uploaded file", err)
		return nil, nil, false
	}

	return data, file, true
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
