package usecases

import (
	"sort"
	"time"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/domain/discussion"
	"github.com/ShigeoUeda/hylable-discussion-backup/internal/hylable"
)

// Poller repeatedly lists a course's discussions until a goal is reached or
// the timeout elapses. The timeout is a soft deadline: hitting it returns
// whatever was collected so far, not an error.
type Poller struct {
	Client   *hylable.Client
	Interval time.Duration
	Timeout  time.Duration
	Location *time.Location

	// OnFound is called once per newly discovered discussion. Optional.
	OnFound func(hylable.Discussion)
}

// CollectIDs polls until max unique discussion IDs are collected or the
// timeout elapses. With recordingOnly set, only discussions whose status is
// "recording" count. IDs are deduplicated across listing passes.
func (p *Poller) CollectIDs(courseID string, max int, recordingOnly bool) ([]string, error) {
	ids := make([]string, 0, max)
	seen := make(map[string]bool)
	deadline := time.Now().Add(p.Timeout)

	for len(ids) < max {
		discs, err := p.Client.ListDiscussions(courseID)
		if err != nil {
			return nil, err
		}

		for _, d := range discs {
			if recordingOnly && d.Status != discussion.StatusRecording {
				continue
			}
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			ids = append(ids, d.ID)
			if p.OnFound != nil {
				p.OnFound(d)
			}
			if len(ids) >= max {
				return ids, nil
			}
		}

		if time.Now().After(deadline) {
			break
		}
		time.Sleep(p.Interval)
	}

	return ids, nil
}

// EnumerateAll polls until a full listing pass yields no new discussions,
// or the timeout elapses. Each record's RecordedAt is converted to the
// display timezone, and the result is sorted descending by RecordedAt.
func (p *Poller) EnumerateAll(courseID string) ([]discussion.Discussion, error) {
	var collected []discussion.Discussion
	seen := make(map[string]bool)
	deadline := time.Now().Add(p.Timeout)

	for {
		discs, err := p.Client.ListDiscussions(courseID)
		if err != nil {
			return nil, err
		}

		added := 0
		for _, d := range discs {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			added++
			collected = append(collected, discussion.Discussion{
				ID:          d.ID,
				Status:      d.Status,
				Topic:       d.Topic,
				Comment:     d.Comment,
				RecordedAt:  d.RecordedAt.In(p.Location),
				DurationSec: d.DurationSec,
				GroupName:   d.GroupName,
			})
			if p.OnFound != nil {
				p.OnFound(d)
			}
		}

		// A pass with nothing new means the listing is complete.
		if added == 0 {
			break
		}
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(p.Interval)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].RecordedAt.After(collected[j].RecordedAt)
	})

	return collected, nil
}
