package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rwalia/estatehub-server/internal/models"
	"go.uber.org/zap"
)

// uploadMedia stores a batch of photo/video files for a listing under a
// per-listing directory and writes one audit entry pair for the batch.
func (h *Handler) uploadMedia(c *gin.Context) {
	listingTimestamp := c.PostForm("listing_timestamp")
	editorUsername := c.PostForm("editor_username")
	if listingTimestamp == "" || editorUsername == "" {
		badRequest(c, "Missing listing_timestamp or editor_username.")
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		badRequest(c, "No files selected for upload.")
		return
	}

	// Colons are path-unsafe on some filesystems
	safeTimestamp := strings.ReplaceAll(listingTimestamp, ":", "-")
	mediaDir := filepath.Join(h.mediaDir, safeTimestamp)
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		h.log.Error("failed to create media directory", zap.String("dir", mediaDir), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Server error during upload.",
		})
		return
	}

	var uploaded []models.UploadedFile
	for _, file := range form.File["files"] {
		if file.Filename == "" {
			continue
		}

		filename := filepath.Base(file.Filename)
		uniqueFilename := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filename)
		savePath := filepath.Join(mediaDir, uniqueFilename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			h.log.Error("failed to save uploaded file",
				zap.String("filename", filename),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Server error during upload.",
			})
			return
		}

		uploaded = append(uploaded, models.UploadedFile{
			Filename: uniqueFilename,
			Filepath: savePath,
			URL:      fmt.Sprintf("/media/%s/%s", safeTimestamp, uniqueFilename),
		})
	}

	if len(uploaded) == 0 {
		badRequest(c, "No valid files were uploaded.")
		return
	}

	filenames := make([]string, len(uploaded))
	for i, f := range uploaded {
		filenames[i] = f.Filename
	}
	h.svc.RecordMediaUpload(c.Request.Context(), listingTimestamp, editorUsername, filenames)

	c.JSON(http.StatusOK, models.UploadMediaResponse{
		Success:       true,
		Message:       fmt.Sprintf("Successfully uploaded %d file(s).", len(uploaded)),
		UploadedFiles: uploaded,
	})
}
