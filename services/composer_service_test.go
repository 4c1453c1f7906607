package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videomerger/models"
)

func TestLimitDecision(t *testing.T) {
	cs := NewComposerService()

	tests := []struct {
		name        string
		duration    float64
		maxDuration float64
	}{
		{"no cap set", 120, 0},
		{"video under the cap", 120, 600},
		{"cap exactly equal to duration", 120, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No trimming should happen, so no real input file is needed
			got, err := cs.Limit("/stage/with_audio.mp4", "/stage/limited.mp4", tt.duration, tt.maxDuration)
			require.NoError(t, err)
			assert.Equal(t, "/stage/with_audio.mp4", got, "video must pass through unchanged")
		})
	}
}

func TestLimitOverCapFailsOnUnreadableInput(t *testing.T) {
	cs := NewComposerService()
	dir := t.TempDir()

	_, err := cs.Limit(filepath.Join(dir, "missing.mp4"), filepath.Join(dir, "limited.mp4"), 120, 60)

	var export *models.ExportError
	assert.ErrorAs(t, err, &export)
}

func TestAttachAudioRequiresBothPaths(t *testing.T) {
	cs := NewComposerService()

	var export *models.ExportError
	assert.ErrorAs(t, cs.AttachAudio("", "/stage/composite.m4a", "/stage/out.mp4"), &export)
	assert.ErrorAs(t, cs.AttachAudio("/stage/assembled.mp4", "", "/stage/out.mp4"), &export)
}
