package usecases

import (
	"time"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/domain/discussion"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/hylable"
)

// TranscriptFetcher retrieves a discussion and its speech-recognition texts.
type TranscriptFetcher struct {
	Client   *hylable.Client
	Location *time.Location
}

// Execute fetches the discussion and its ASR segments and concatenates the
// segment texts in order. Any lookup failure yields a transcript with
// Available=false so the caller can skip the discussion and keep going; the
// returned error says why, for logging, and is never a hard failure.
func (f *TranscriptFetcher) Execute(discussionID string) (discussion.Discussion, discussion.Transcript, error) {
	unavailable := discussion.Transcript{DiscussionID: discussionID}

	d, err := f.Client.GetDiscussion(discussionID)
	if err != nil {
		return discussion.Discussion{}, unavailable, err
	}

	segments, err := f.Client.GetASR(discussionID)
	if err != nil {
		return discussion.Discussion{}, unavailable, err
	}

	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}

	detail := discussion.Discussion{
		ID:          d.ID,
		Status:      d.Status,
		Topic:       d.Topic,
		Comment:     d.Comment,
		RecordedAt:  d.RecordedAt.In(f.Location),
		DurationSec: d.DurationSec,
		GroupName:   d.GroupName,
	}

	transcript := discussion.Transcript{
		DiscussionID: discussionID,
		Texts:        texts,
		Available:    true,
	}

	return detail, transcript, nil
}
