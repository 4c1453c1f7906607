package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"videomerger/config"
	"videomerger/models"
	"videomerger/services"
	"videomerger/utils"
)

// Merger runs the merge pipeline for one request
type Merger interface {
	Run(ctx context.Context, req models.MergeRequest) (*models.MergeResult, error)
}

// MergeHandler handles video merge requests
type MergeHandler struct {
	cfg    *config.Config
	merger Merger
}

// NewMergeHandler wires the pipeline services and creates the handler
func NewMergeHandler(cfg *config.Config) *MergeHandler {
	fetcher := services.NewFetchService(time.Duration(cfg.DownloadTimeoutSeconds) * time.Second)
	assembler := services.NewAssemblerService(cfg.VideoFPS)
	compositor := services.NewAudioService(cfg.BackgroundVolume, cfg.AudioSampleRate, cfg.AudioBitrate)
	composer := services.NewComposerService()

	merger := services.NewMergeService(fetcher, assembler, compositor, composer, cfg.TempDir, cfg.OutputDir)

	return &MergeHandler{
		cfg:    cfg,
		merger: merger,
	}
}

// Merge handles POST /merge
func (h *MergeHandler) Merge(c *gin.Context) {
	var req models.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	for i, videoURL := range req.Videos {
		if videoURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Video URL at index %d is empty", i)})
			return
		}
	}
	if req.MaxDuration < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_duration must be positive"})
		return
	}

	result, err := h.merger.Run(c.Request.Context(), req)
	if err != nil {
		c.JSON(errorStatus(err), models.MergeErrorResponse{
			Kind:  models.ErrorKind(err),
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MergeResponse{
		OutputFile: "/output/" + result.OutputFile,
		Message:    result.Message,
	})
}

// errorStatus maps pipeline error kinds to HTTP statuses. An upstream asset
// that cannot be fetched is the remote's fault; everything else is ours.
func errorStatus(err error) int {
	var download *models.DownloadError
	if errors.As(err, &download) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Download handles GET /output/:filename
func (h *MergeHandler) Download(c *gin.Context) {
	// Base strips any path components, so requests cannot escape OutputDir
	filename := filepath.Base(c.Param("filename"))
	if filename == "" || strings.HasPrefix(filename, ".") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Output file not found"})
		return
	}
	artifactPath := filepath.Join(h.cfg.OutputDir, filename)

	if !utils.FileExists(artifactPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Output file not found"})
		return
	}

	c.Header("Content-Type", "video/mp4")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.File(artifactPath)
}
