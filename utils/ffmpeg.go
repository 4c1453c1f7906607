package utils

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// RunFFmpegCommand executes an FFmpeg command
func RunFFmpegCommand(args []string) error {
	cmd := exec.Command("ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("ffmpeg error: %w, stderr: %s", err, stderr.String())
	}

	return nil
}

// ProbeDuration returns the duration of a media file in seconds.
// Works for both video and audio files.
func ProbeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %w", err)
	}

	return parseDuration(string(output))
}

func parseDuration(output string) (float64, error) {
	durationStr := strings.TrimSpace(output)
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// ProbeDimensions returns the width and height of a video file's first
// video stream.
func ProbeDimensions(path string) (int, int, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe error: %w", err)
	}

	return parseDimensions(string(output))
}

func parseDimensions(output string) (int, int, error) {
	fields := strings.Split(strings.TrimSpace(output), ",")
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected ffprobe output: %q", output)
	}

	width, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse width: %w", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse height: %w", err)
	}

	return width, height, nil
}

// AttachAudio muxes an audio track onto a video file. Both streams are
// copied, not re-encoded; the video was already encoded during assembly and
// the audio during compositing.
func AttachAudio(videoPath, audioPath, outputPath string) error {
	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-y", outputPath,
	}

	return RunFFmpegCommand(args)
}

// TrimVideo trims video to target duration
func TrimVideo(inputPath, outputPath string, targetDuration float64) error {
	args := []string{
		"-i", inputPath,
		"-t", fmt.Sprintf("%.3f", targetDuration),
		"-c", "copy",
		"-y", outputPath,
	}

	return RunFFmpegCommand(args)
}
