package dict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eslsoft/wordbook/internal/infrastructure/config"
)

// explanationPrompt is the fixed instruction sent to the chat-completion
// provider. The section titles stay in English; the explanations themselves
// are requested in Vietnamese for the learner.
const explanationPrompt = `
You are an English learning assistant.

Given an English word from the user, explain it clearly in Vietnamese.
You MUST respond using EXACTLY the following structure and numbering.
Do NOT add extra sections, comments, introductions, or conclusions.

Format requirements:
- Use Vietnamese only for explanations
- Keep the section titles in English exactly as written
- Use simple, clear, learner-friendly Vietnamese
- Always use numbering: 1. 2. 3. 4.
- If information is not available, write: Không có

Response format:

1. Meaning
Giải thích ý nghĩa của từ bằng tiếng Việt, ngắn gọn và dễ hiểu.

2. Synonyms
Liệt kê các từ đồng nghĩa phổ biến.
Nếu từ đồng nghĩa có sắc thái hoặc cách dùng khác, hãy ghi chú ngắn gọn.
Nếu không có từ đồng nghĩa phù hợp, ghi: Không có.

3. Usage
Giải thích cách dùng của từ.
Đưa ra 1-2 câu ví dụ ngắn bằng tiếng Anh.

4. Word Forms & Part of Speech
Nêu rõ từ loại của từ đã cho (noun, verb, adjective, etc.).
Liệt kê các dạng từ liên quan khác (nếu có) và nêu rõ từ loại của từng dạng.
Nếu không có, ghi: Không có.

The word is: %s
`

// ChatClient generates word explanations through an OpenAI-compatible
// chat-completion endpoint.
type ChatClient struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

func NewChatClient(cfg config.AIConfig) *ChatClient {
	return &ChatClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Explain asks the provider for a structured explanation of word. Callers
// treat failures as best-effort: an error here should be logged, not
// propagated to the end user.
func (c *ChatClient) Explain(ctx context.Context, word string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: fmt.Sprintf(explanationPrompt, word)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion: status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
