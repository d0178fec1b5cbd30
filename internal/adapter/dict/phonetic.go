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

// PhoneticClient looks up IPA transcriptions from a dictionaryapi.dev
// compatible endpoint.
type PhoneticClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPhoneticClient(cfg config.DictionaryConfig) *PhoneticClient {
	return &PhoneticClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type dictionaryEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
}

// Phonetic returns the first usable transcription for word, preferring the
// entry-level value. An unknown word yields an empty string, not an error.
func (c *PhoneticClient) Phonetic(ctx context.Context, word string) (string, error) {
	endpoint := fmt.Sprintf("%s/entries/en/%s", c.baseURL, url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build phonetic request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("phonetic request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("phonetic: status %d", resp.StatusCode)
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("decode phonetic response: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	entry := entries[0]
	if entry.Phonetic != "" {
		return entry.Phonetic, nil
	}
	for _, p := range entry.Phonetics {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", nil
}
