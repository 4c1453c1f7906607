package services

import (
	"fmt"

	"videomerger/models"
	"videomerger/utils"
)

// AudioService mixes background music and narration into a single composite
// audio track covering a target duration.
//
// Mixing rules:
//   - With both tracks present, background is attenuated to a fixed fraction
//     of its level (default 30%) so narration stays intelligible; narration
//     plays at full volume from t=0.
//   - Background shorter than the target is looped, never stretched, then
//     trimmed to the exact duration; longer background is trimmed.
//   - Narration longer than the target is trimmed; shorter narration leaves
//     background (or nothing) for the remainder.
//   - With only one track present it is used at FULL volume: the attenuation
//     exists for narration clarity, not as a property of the background file.
type AudioService struct {
	backgroundVolume float64
	sampleRate       int
	audioBitrate     string
}

// NewAudioService creates a new audio compositor
func NewAudioService(backgroundVolume float64, sampleRate int, audioBitrate string) *AudioService {
	return &AudioService{
		backgroundVolume: backgroundVolume,
		sampleRate:       sampleRate,
		audioBitrate:     audioBitrate,
	}
}

// Composite mixes the provided tracks into outputPath. Either path may be
// empty. Returns false when neither track is provided, in which case no
// audio file is written and the final video carries no audio track.
func (as *AudioService) Composite(backgroundPath, narrationPath, outputPath string, targetDuration float64) (bool, error) {
	if backgroundPath == "" && narrationPath == "" {
		return false, nil
	}

	// Probe inputs first so corrupt files surface as AudioError rather than
	// an opaque ffmpeg filter failure.
	if backgroundPath != "" {
		if _, err := utils.ProbeDuration(backgroundPath); err != nil {
			return false, &models.AudioError{Path: backgroundPath, Err: err}
		}
	}
	if narrationPath != "" {
		if _, err := utils.ProbeDuration(narrationPath); err != nil {
			return false, &models.AudioError{Path: narrationPath, Err: err}
		}
	}

	args := as.buildCompositeArgs(backgroundPath, narrationPath, outputPath, targetDuration)
	if err := utils.RunFFmpegCommand(args); err != nil {
		return false, &models.AudioError{Err: err}
	}

	return true, nil
}

// buildCompositeArgs builds the ffmpeg invocation for the three input
// shapes: both tracks, background only, narration only.
func (as *AudioService) buildCompositeArgs(backgroundPath, narrationPath, outputPath string, targetDuration float64) []string {
	encode := []string{
		"-ar", fmt.Sprintf("%d", as.sampleRate),
		"-c:a", "aac",
		"-b:a", as.audioBitrate,
		"-y", outputPath,
	}

	switch {
	case backgroundPath != "" && narrationPath != "":
		// Loop background indefinitely, trim both tracks to the target, then
		// mix with the background attenuated. normalize=0 keeps narration at
		// its source level instead of amix's default input averaging.
		filter := fmt.Sprintf(
			"[0:a]volume=%.2f,atrim=0:%.3f,asetpts=PTS-STARTPTS[bg];"+
				"[1:a]atrim=0:%.3f,asetpts=PTS-STARTPTS[nr];"+
				"[bg][nr]amix=inputs=2:duration=first:normalize=0[mix]",
			as.backgroundVolume, targetDuration, targetDuration)
		args := []string{
			"-stream_loop", "-1",
			"-i", backgroundPath,
			"-i", narrationPath,
			"-filter_complex", filter,
			"-map", "[mix]",
		}
		return append(args, encode...)

	case backgroundPath != "":
		// Background alone keeps its full volume; loop to cover the target,
		// trim to exactly the target.
		args := []string{
			"-stream_loop", "-1",
			"-i", backgroundPath,
			"-t", fmt.Sprintf("%.3f", targetDuration),
		}
		return append(args, encode...)

	default:
		// Narration alone: trim if longer than the target; if shorter, the
		// track simply ends early and the remainder of the video is silent.
		args := []string{
			"-i", narrationPath,
			"-t", fmt.Sprintf("%.3f", targetDuration),
		}
		return append(args, encode...)
	}
}
