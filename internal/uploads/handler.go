package uploads

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/extract"
	"interview-backend/internal/shared/server/respond"
	"interview-backend/internal/shared/telemetry"
	"interview-backend/internal/shared/util"
)

const maxUploadBytes = 5 << 20

// RegisterRoutes attaches the resume upload route to the router group.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-resume", uploadResume)
}

// uploadResume accepts a multipart "resume" file, extracts its text, and
// returns it for a subsequent interview start request. Nothing is stored.
func uploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file exceeds 5MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := extract.FromBytes(c.Request.Context(), data, mimeType, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "only PDF, DOCX, and plain text resumes are supported", nil)
			return
		}
		telemetry.Error("uploads.extract_failed", map[string]any{
			"err":        err.Error(),
			"file_name":  fileName,
			"mime_type":  mimeType,
			"size_bytes": fileHeader.Size,
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from the resume", nil)
		return
	}

	if strings.TrimSpace(text) == "" {
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "the resume appears to be empty", nil)
		return
	}

	respond.OK(c, gin.H{
		"resumeText": text,
		"fileName":   fileName,
	})
}
