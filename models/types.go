package models

// MergeRequest represents the input from the transport layer.
// Videos are concatenated in the order given.
type MergeRequest struct {
	Videos          []string `json:"videos" binding:"required,min=1"`
	BackgroundAudio string   `json:"background_audio"`
	Narration       string   `json:"narration"`
	MaxDuration     float64  `json:"max_duration"` // seconds, 0 means uncapped
}

// MergeResponse is the JSON body returned on a successful merge.
type MergeResponse struct {
	OutputFile string `json:"output_file"`
	Message    string `json:"message"`
}

// MergeErrorResponse is the JSON body returned when a merge fails.
type MergeErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// MediaKind distinguishes staged video and audio assets.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// StagedAsset is a remote asset downloaded into a run's staging directory.
// It is owned by the run that created it and deleted when the run ends.
type StagedAsset struct {
	URL  string
	Path string
	Kind MediaKind
}

// MergeResult is produced by a successful pipeline run.
type MergeResult struct {
	RunID      string
	OutputFile string // base name of the artifact in the output directory
	Message    string
}
