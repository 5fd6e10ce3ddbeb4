package discussion

import "time"

// Discussion is an immutable snapshot of a session, with RecordedAt already
// converted to the configured display timezone.
type Discussion struct {
	ID          string
	Status      string
	Topic       string
	Comment     string
	RecordedAt  time.Time
	DurationSec int
	GroupName   string
}

// StatusRecording marks a discussion that is still being recorded.
const StatusRecording = "recording"

// Transcript holds the ordered speech-recognition texts of one discussion.
// Available is false when the discussion or its ASR data could not be
// fetched; callers skip such discussions and continue.
type Transcript struct {
	DiscussionID string
	Texts        []string
	Available    bool
}
