package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"videomerger/models"
	"videomerger/utils"
)

// Fetcher downloads staged assets
type Fetcher interface {
	FetchAll(ctx context.Context, assets []models.StagedAsset) error
}

// Assembler concatenates video clips and reports the assembled duration
type Assembler interface {
	Assemble(videoPaths []string, outputPath string) (float64, error)
}

// Compositor mixes background and narration into one audio track
type Compositor interface {
	Composite(backgroundPath, narrationPath, outputPath string, targetDuration float64) (bool, error)
}

// Composer attaches audio and applies the duration cap
type Composer interface {
	AttachAudio(videoPath, audioPath, outputPath string) error
	Limit(inputPath, outputPath string, duration, maxDuration float64) (string, error)
}

// MergeService drives one merge run through its fixed sequence of steps:
// fetch, assemble, composite audio, attach audio, limit, export. Every run
// stages into its own uuid-named directory under tempDir, which is removed
// when the run ends whether it succeeded or failed; the exported artifact in
// outputDir is never touched by cleanup.
type MergeService struct {
	fetcher    Fetcher
	assembler  Assembler
	compositor Compositor
	composer   Composer

	tempDir   string
	outputDir string
}

// NewMergeService creates a new merge orchestrator
func NewMergeService(fetcher Fetcher, assembler Assembler, compositor Compositor, composer Composer, tempDir, outputDir string) *MergeService {
	return &MergeService{
		fetcher:    fetcher,
		assembler:  assembler,
		compositor: compositor,
		composer:   composer,
		tempDir:    tempDir,
		outputDir:  outputDir,
	}
}

// Run executes the pipeline for one request. It returns the result of a
// successful export, or the first typed error encountered; a failed run
// never leaves an artifact in the output directory.
func (ms *MergeService) Run(ctx context.Context, req models.MergeRequest) (*models.MergeResult, error) {
	runID := uuid.New().String()
	log.Printf("[Run %s] merging %d clips (background=%t narration=%t max=%.0fs)",
		runID, len(req.Videos), req.BackgroundAudio != "", req.Narration != "", req.MaxDuration)

	runDir, err := utils.CreateRunDir(ms.tempDir, runID)
	if err != nil {
		return nil, &models.DownloadError{Err: fmt.Errorf("failed to create staging dir: %w", err)}
	}
	// Cleanup runs on every exit path and removes all staged inputs and
	// intermediate artifacts for this run.
	defer func() {
		if err := os.RemoveAll(runDir); err != nil {
			log.Printf("[Run %s] cleanup failed: %v", runID, err)
		}
	}()

	assets, videoPaths, backgroundPath, narrationPath := stageAssets(req, runDir)

	if err := ms.fetcher.FetchAll(ctx, assets); err != nil {
		log.Printf("[Run %s] FAILED fetching: %v", runID, err)
		return nil, err
	}

	assembledPath := filepath.Join(runDir, "assembled.mp4")
	duration, err := ms.assembler.Assemble(videoPaths, assembledPath)
	if err != nil {
		log.Printf("[Run %s] FAILED assembling: %v", runID, err)
		return nil, err
	}
	log.Printf("[Run %s] assembled %d clips, duration %.2fs", runID, len(videoPaths), duration)

	// The composite track is built against the pre-limit assembled duration;
	// the limiter then truncates video and audio together.
	combinedPath := assembledPath
	compositePath := filepath.Join(runDir, "composite.m4a")
	hasAudio, err := ms.compositor.Composite(backgroundPath, narrationPath, compositePath, duration)
	if err != nil {
		log.Printf("[Run %s] FAILED compositing audio: %v", runID, err)
		return nil, err
	}

	if hasAudio {
		withAudioPath := filepath.Join(runDir, "with_audio.mp4")
		if err := ms.composer.AttachAudio(combinedPath, compositePath, withAudioPath); err != nil {
			log.Printf("[Run %s] FAILED attaching audio: %v", runID, err)
			return nil, err
		}
		combinedPath = withAudioPath
	}

	limitedPath, err := ms.composer.Limit(combinedPath, filepath.Join(runDir, "limited.mp4"), duration, req.MaxDuration)
	if err != nil {
		log.Printf("[Run %s] FAILED limiting: %v", runID, err)
		return nil, err
	}

	outputName := fmt.Sprintf("merged_video_%s.mp4", runID)
	outputPath := filepath.Join(ms.outputDir, outputName)
	if err := utils.MoveFile(limitedPath, outputPath); err != nil {
		log.Printf("[Run %s] FAILED exporting: %v", runID, err)
		return nil, &models.ExportError{Err: err}
	}

	log.Printf("[Run %s] exported %s", runID, outputName)
	return &models.MergeResult{
		RunID:      runID,
		OutputFile: outputName,
		Message:    "Videos and audio merged successfully",
	}, nil
}

// stageAssets plans the staging paths for every asset in the request. Paths
// are unique per asset and live under the run's own directory, so concurrent
// runs never collide.
func stageAssets(req models.MergeRequest, runDir string) (assets []models.StagedAsset, videoPaths []string, backgroundPath, narrationPath string) {
	for i, videoURL := range req.Videos {
		p := filepath.Join(runDir, fmt.Sprintf("video_%03d%s", i, assetExt(videoURL, ".mp4")))
		assets = append(assets, models.StagedAsset{URL: videoURL, Path: p, Kind: models.MediaVideo})
		videoPaths = append(videoPaths, p)
	}

	if req.BackgroundAudio != "" {
		backgroundPath = filepath.Join(runDir, "background"+assetExt(req.BackgroundAudio, ".mp3"))
		assets = append(assets, models.StagedAsset{URL: req.BackgroundAudio, Path: backgroundPath, Kind: models.MediaAudio})
	}

	if req.Narration != "" {
		narrationPath = filepath.Join(runDir, "narration"+assetExt(req.Narration, ".mp3"))
		assets = append(assets, models.StagedAsset{URL: req.Narration, Path: narrationPath, Kind: models.MediaAudio})
	}

	return assets, videoPaths, backgroundPath, narrationPath
}

// assetExt keeps the source URL's file extension when it has one so ffmpeg
// can sniff the container, falling back to a sensible default.
func assetExt(rawURL, fallback string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return fallback
}
