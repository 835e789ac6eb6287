package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultURL is the Debian security tracker's full JSON dump.
const DefaultURL = "https://security-tracker.debian.org/tracker/data/json"

// ErrUnexpectedStatus marks a fetch that reached the tracker but got a
// non-success response. No retry is attempted.
var ErrUnexpectedStatus = errors.New("unexpected response status")

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Fetch() (Data, error) {
	resp, err := c.httpClient.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch vulnerability data from %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch vulnerability data from %s: status %d: %w", c.url, resp.StatusCode, ErrUnexpectedStatus)
	}

	var data Data
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode vulnerability data from %s: %w", c.url, err)
	}

	return data, nil
}
