package hylable

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Hylable discussion API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient returns a client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Discussion is a snapshot of a recorded or recording session as returned
// by the API. RecordedAt is whatever timezone the API reports (UTC).
type Discussion struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Topic       string    `json:"topic"`
	Comment     string    `json:"comment"`
	RecordedAt  time.Time `json:"recordedAt"`
	DurationSec int       `json:"duration_sec"`
	GroupName   string    `json:"group_name"`
}

// ASRSegment is one speech-recognition segment of a discussion.
type ASRSegment struct {
	Text string `json:"text"`
}

// ListDiscussions returns all discussions currently visible for a course.
func (c *Client) ListDiscussions(courseID string) ([]Discussion, error) {
	var resp struct {
		Discussions []Discussion `json:"discussions"`
	}
	path := fmt.Sprintf("/courses/%s/discussions", url.PathEscape(courseID))
	if err := c.get(path, &resp); err != nil {
		return nil, fmt.Errorf("listing discussions for course %s: %w", courseID, err)
	}
	return resp.Discussions, nil
}

// GetDiscussion fetches a single discussion by ID.
func (c *Client) GetDiscussion(discussionID string) (*Discussion, error) {
	var d Discussion
	path := fmt.Sprintf("/discussions/%s", url.PathEscape(discussionID))
	if err := c.get(path, &d); err != nil {
		return nil, fmt.Errorf("fetching discussion %s: %w", discussionID, err)
	}
	return &d, nil
}

// GetASR fetches the speech-recognition segments for a discussion, in
// spoken order.
func (c *Client) GetASR(discussionID string) ([]ASRSegment, error) {
	var resp struct {
		Segments []ASRSegment `json:"segments"`
	}
	path := fmt.Sprintf("/discussions/%s/asr", url.PathEscape(discussionID))
	if err := c.get(path, &resp); err != nil {
		return nil, fmt.Errorf("fetching ASR for discussion %s: %w", discussionID, err)
	}
	return resp.Segments, nil
}

func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling Hylable API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hylable API error (HTTP %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing Hylable response: %w", err)
	}
	return nil
}
