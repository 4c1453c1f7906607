package services

import (
	"fmt"

	"videomerger/models"
	"videomerger/utils"
)

// ComposerService combines the assembled video with the composite audio
// track and applies the duration cap to the combined result, so both streams
// truncate together.
type ComposerService struct{}

// NewComposerService creates a new composer service
func NewComposerService() *ComposerService {
	return &ComposerService{}
}

// AttachAudio muxes the composite audio track onto the assembled video.
func (cs *ComposerService) AttachAudio(videoPath, audioPath, outputPath string) error {
	if videoPath == "" || audioPath == "" {
		return &models.ExportError{Err: fmt.Errorf("video and audio paths are required")}
	}

	if err := utils.AttachAudio(videoPath, audioPath, outputPath); err != nil {
		return &models.ExportError{Err: err}
	}

	return nil
}

// Limit hard-cuts the video to its first maxDuration seconds. duration is
// the known length of inputPath. When no cap is set, or the video already
// fits (a cap exactly equal to the duration leaves it untouched), the input
// path is returned unchanged and no work is done.
func (cs *ComposerService) Limit(inputPath, outputPath string, duration, maxDuration float64) (string, error) {
	if maxDuration <= 0 || duration <= maxDuration {
		return inputPath, nil
	}

	if err := utils.TrimVideo(inputPath, outputPath, maxDuration); err != nil {
		return "", &models.ExportError{Err: err}
	}

	return outputPath, nil
}
