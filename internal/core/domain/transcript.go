package domain

// UnknownDate is used when a caption filename carries no YYYYMMDD prefix.
const UnknownDate = "Unknown"

// CaptionFile is one timed-text document as read from storage.
// It is the source's output before normalisation.
type CaptionFile struct {
	// Name is the base filename, which carries the video metadata.
	Name string

	// Path is the full location of the file.
	Path string

	// Content is the raw bytes.
	Content []byte
}

// SourceDocument identifies the video a caption file belongs to.
// It is derived once from the filename and never modified.
type SourceDocument struct {
	// VideoID is the 11-character external video identifier.
	VideoID string

	// Date is the upload date as YYYYMMDD, or UnknownDate.
	Date string

	// Title is the video title as encoded in the filename.
	Title string
}

// Cue is a single timed utterance. Cues only exist during ingestion.
type Cue struct {
	// Start is the offset from the start of the video, in seconds.
	Start float64

	// Text is the cleaned caption text. Never empty.
	Text string
}

// Record is the canonical searchable unit persisted in the index.
// There is one record per cue that survives deduplication.
type Record struct {
	VideoID string `json:"video_id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Text    string `json:"text"`

	// Timestamp is the HH:MM:SS display form of the cue offset.
	Timestamp string `json:"timestamp"`

	// URL is the deep link that opens the video at the cue offset.
	URL string `json:"url"`
}
