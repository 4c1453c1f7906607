package services

import (
	"fmt"
	"strings"

	"videomerger/models"
	"videomerger/utils"
)

// AssemblerService concatenates video clips into one continuous track.
//
// Clips may differ in resolution and frame rate; every clip is conformed to
// the FIRST clip's resolution (aspect ratio preserved, padded to fill) and to
// the configured frame rate before the hard-cut concat. The assembled track
// is video-only; audio is attached later by the composer.
type AssemblerService struct {
	fps int
}

// NewAssemblerService creates a new assembler service
func NewAssemblerService(fps int) *AssemblerService {
	return &AssemblerService{fps: fps}
}

// Assemble concatenates the clips in the given order into outputPath and
// returns the assembled duration in seconds.
func (as *AssemblerService) Assemble(videoPaths []string, outputPath string) (float64, error) {
	if len(videoPaths) == 0 {
		return 0, &models.AssemblyError{Err: fmt.Errorf("no video clips to assemble")}
	}

	// Probe every clip up front: a corrupt or unreadable clip fails the run
	// rather than being silently skipped. The first clip fixes the target
	// resolution.
	width, height, err := utils.ProbeDimensions(videoPaths[0])
	if err != nil {
		return 0, &models.AssemblyError{Err: fmt.Errorf("unreadable clip %s: %w", videoPaths[0], err)}
	}
	for _, path := range videoPaths[1:] {
		if _, err := utils.ProbeDuration(path); err != nil {
			return 0, &models.AssemblyError{Err: fmt.Errorf("unreadable clip %s: %w", path, err)}
		}
	}

	args := buildConcatArgs(videoPaths, width, height, as.fps, outputPath)
	if err := utils.RunFFmpegCommand(args); err != nil {
		return 0, &models.AssemblyError{Err: err}
	}

	duration, err := utils.ProbeDuration(outputPath)
	if err != nil {
		return 0, &models.AssemblyError{Err: fmt.Errorf("failed to probe assembled video: %w", err)}
	}

	return duration, nil
}

// buildConcatArgs builds the ffmpeg invocation that normalizes every clip to
// the target resolution/fps and concatenates them with hard cuts.
func buildConcatArgs(videoPaths []string, width, height, fps int, outputPath string) []string {
	args := []string{}
	for _, path := range videoPaths {
		args = append(args, "-i", path)
	}

	filterParts := []string{}
	for i := range videoPaths {
		// Scale to target resolution keeping aspect ratio, pad to fill,
		// normalize sar/fps/pixel format so concat accepts the streams
		norm := fmt.Sprintf("[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%d,format=yuv420p[v%d]",
			i, width, height, width, height, fps, i)
		filterParts = append(filterParts, norm)
	}

	concatFilter := ""
	for i := range videoPaths {
		concatFilter += fmt.Sprintf("[v%d]", i)
	}
	concatFilter += fmt.Sprintf("concat=n=%d:v=1:a=0[vout]", len(videoPaths))
	filterParts = append(filterParts, concatFilter)

	args = append(args,
		"-filter_complex", strings.Join(filterParts, ";"),
		"-map", "[vout]",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "18",
		"-y", outputPath,
	)

	return args
}
