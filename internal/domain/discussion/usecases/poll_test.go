package usecases

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ShigeoUeda/hylable-discussion-backup/internal/hylable"
)

// listServer serves /courses/{id}/discussions from a per-call script. Once
// the script runs out, the last response repeats.
type listServer struct {
	mu        sync.Mutex
	responses [][]hylable.Discussion
	calls     int
}

func (s *listServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		idx := s.calls
		if idx >= len(s.responses) {
			idx = len(s.responses) - 1
		}
		discs := s.responses[idx]
		s.calls++
		s.mu.Unlock()

		if err := json.NewEncoder(w).Encode(map[string]any{"discussions": discs}); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}
}

func newPoller(t *testing.T, srv *httptest.Server, timeout time.Duration) *Poller {
	t.Helper()
	return &Poller{
		Client:   hylable.NewClient(srv.URL, "test-key"),
		Interval: time.Millisecond,
		Timeout:  timeout,
		Location: time.FixedZone("JST", 9*60*60),
	}
}

func disc(id, status string, recordedAt time.Time) hylable.Discussion {
	return hylable.Discussion{ID: id, Status: status, RecordedAt: recordedAt}
}

func TestCollectIDsStopsAtMax(t *testing.T) {
	now := time.Now().UTC()
	ls := &listServer{responses: [][]hylable.Discussion{{
		disc("dsc_1", "done", now),
		disc("dsc_2", "done", now),
		disc("dsc_3", "done", now),
		disc("dsc_4", "done", now),
	}}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, time.Second)

	ids, err := p.CollectIDs("crs_1", 3, false)
	if err != nil {
		t.Fatalf("collect IDs: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 IDs, got %v", ids)
	}
}

func TestCollectIDsDeduplicatesAcrossPasses(t *testing.T) {
	now := time.Now().UTC()
	ls := &listServer{responses: [][]hylable.Discussion{
		{disc("dsc_1", "done", now)},
		{disc("dsc_1", "done", now), disc("dsc_2", "done", now)},
	}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, time.Second)

	ids, err := p.CollectIDs("crs_1", 2, false)
	if err != nil {
		t.Fatalf("collect IDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "dsc_1" || ids[1] != "dsc_2" {
		t.Fatalf("expected [dsc_1 dsc_2], got %v", ids)
	}
}

func TestCollectIDsRecordingOnly(t *testing.T) {
	now := time.Now().UTC()
	ls := &listServer{responses: [][]hylable.Discussion{{
		disc("dsc_1", "done", now),
		disc("dsc_2", "recording", now),
		disc("dsc_3", "done", now),
		disc("dsc_4", "recording", now),
	}}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, time.Second)

	ids, err := p.CollectIDs("crs_1", 2, true)
	if err != nil {
		t.Fatalf("collect IDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "dsc_2" || ids[1] != "dsc_4" {
		t.Fatalf("expected recording IDs only, got %v", ids)
	}
}

func TestCollectIDsTimeoutIsSoft(t *testing.T) {
	ls := &listServer{responses: [][]hylable.Discussion{{}}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, 30*time.Millisecond)
	p.Interval = 5 * time.Millisecond

	start := time.Now()
	ids, err := p.CollectIDs("crs_1", 3, false)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected timeout to be soft, got error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no IDs, got %v", ids)
	}
	// Never blocks past timeout plus one poll interval (plus scheduling
	// slack for slow CI).
	if elapsed > p.Timeout+p.Interval+500*time.Millisecond {
		t.Fatalf("collect blocked too long: %v", elapsed)
	}
}

func TestEnumerateAllSortsDescendingAndConvertsTimezone(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	ls := &listServer{responses: [][]hylable.Discussion{
		{
			disc("dsc_old", "done", base),
			disc("dsc_new", "done", base.Add(2*time.Hour)),
		},
		{
			disc("dsc_old", "done", base),
			disc("dsc_new", "done", base.Add(2*time.Hour)),
			disc("dsc_mid", "done", base.Add(time.Hour)),
		},
	}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, time.Second)

	discussions, err := p.EnumerateAll("crs_1")
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}

	if len(discussions) != 3 {
		t.Fatalf("expected 3 discussions, got %d", len(discussions))
	}
	for i, want := range []string{"dsc_new", "dsc_mid", "dsc_old"} {
		if discussions[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, discussions[i].ID)
		}
	}
	for i := 1; i < len(discussions); i++ {
		if discussions[i].RecordedAt.After(discussions[i-1].RecordedAt) {
			t.Fatalf("not sorted descending at position %d", i)
		}
	}

	// Newest was recorded at 02:00 UTC, so 11:00 in the display timezone.
	if got := discussions[0].RecordedAt.Format("15:04"); got != "11:00" {
		t.Fatalf("expected display time 11:00, got %s", got)
	}
}

func TestEnumerateAllStopsWhenPassAddsNothing(t *testing.T) {
	now := time.Now().UTC()
	ls := &listServer{responses: [][]hylable.Discussion{
		{disc("dsc_1", "done", now)},
		{disc("dsc_1", "done", now)},
	}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, time.Minute)

	discussions, err := p.EnumerateAll("crs_1")
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	if len(discussions) != 1 {
		t.Fatalf("expected 1 discussion, got %d", len(discussions))
	}

	ls.mu.Lock()
	calls := ls.calls
	ls.mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 listing passes, got %d", calls)
	}
}

func TestEnumerateAllReturnsByDeadline(t *testing.T) {
	// Every pass yields a new discussion, so only the deadline stops it.
	var responses [][]hylable.Discussion
	var growing []hylable.Discussion
	now := time.Now().UTC()
	for i := 0; i < 1000; i++ {
		growing = append(growing, disc(fmt.Sprintf("dsc_%04d", i), "done", now.Add(time.Duration(i)*time.Second)))
		responses = append(responses, append([]hylable.Discussion(nil), growing...))
	}
	ls := &listServer{responses: responses}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, 30*time.Millisecond)
	p.Interval = 5 * time.Millisecond

	start := time.Now()
	discussions, err := p.EnumerateAll("crs_1")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	if len(discussions) == 0 {
		t.Fatal("expected partial results at deadline")
	}
	if elapsed > p.Timeout+p.Interval+500*time.Millisecond {
		t.Fatalf("enumerate blocked too long: %v", elapsed)
	}
}

func TestPollerReportsNewDiscussions(t *testing.T) {
	now := time.Now().UTC()
	ls := &listServer{responses: [][]hylable.Discussion{
		{disc("dsc_1", "done", now), disc("dsc_2", "done", now)},
		{disc("dsc_1", "done", now), disc("dsc_2", "done", now)},
	}}
	srv := httptest.NewServer(ls.handler(t))
	defer srv.Close()

	p := newPoller(t, srv, time.Second)
	var found []string
	p.OnFound = func(d hylable.Discussion) { found = append(found, d.ID) }

	if _, err := p.EnumerateAll("crs_1"); err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	if len(found) != 2 || found[0] != "dsc_1" || found[1] != "dsc_2" {
		t.Fatalf("expected each discussion reported once, got %v", found)
	}
}
