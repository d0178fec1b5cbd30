package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eslsoft/wordbook/internal/infrastructure/config"
)

// Suggestion is one entry of the external word-suggestion list, passed
// through to the client unchanged.
type Suggestion struct {
	Word  string `json:"word"`
	Score int64  `json:"score"`
}

// SuggestClient fetches word suggestions from a Datamuse-style endpoint.
type SuggestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewSuggestClient(cfg config.SuggestConfig) *SuggestClient {
	return &SuggestClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Suggest returns completion candidates for the given keyword prefix.
func (c *SuggestClient) Suggest(ctx context.Context, keyword string) ([]Suggestion, error) {
	endpoint := fmt.Sprintf("%s/sug?s=%s", c.baseURL, url.QueryEscape(keyword))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build suggest request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest: status %d", resp.StatusCode)
	}

	var suggestions []Suggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, fmt.Errorf("decode suggest response: %w", err)
	}
	return suggestions, nil
}
