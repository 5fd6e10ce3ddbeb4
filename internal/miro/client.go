package miro

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Miro REST API v2.
type Client struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
}

// NewClient returns a client for the given API base URL and access token.
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		BaseURL:     baseURL,
		AccessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GetBoard fetches the board document as-is. The board schema is owned by
// Miro, so it is kept opaque.
func (c *Client) GetBoard(boardID string) (json.RawMessage, error) {
	body, err := c.get(fmt.Sprintf("/boards/%s", url.PathEscape(boardID)), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching board %s: %w", boardID, err)
	}
	return body, nil
}

// ListItems fetches every item on a board, following the pagination cursor
// until a response omits it. Items are returned in request order.
func (c *Client) ListItems(boardID string) ([]json.RawMessage, error) {
	items := make([]json.RawMessage, 0)
	cursor := ""

	for {
		params := url.Values{}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		body, err := c.get(fmt.Sprintf("/boards/%s/items", url.PathEscape(boardID)), params)
		if err != nil {
			return nil, fmt.Errorf("fetching items for board %s: %w", boardID, err)
		}

		var page struct {
			Data   []json.RawMessage `json:"data"`
			Cursor string            `json:"cursor"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parsing items page: %w", err)
		}

		items = append(items, page.Data...)
		cursor = page.Cursor
		if cursor == "" {
			break
		}
	}

	return items, nil
}

func (c *Client) get(path string, params url.Values) (json.RawMessage, error) {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Miro API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("miro API error (HTTP %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
