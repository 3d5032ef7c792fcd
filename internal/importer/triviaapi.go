package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TriviaAPIClient integrates with the-trivia-api.com v2.
type TriviaAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Source = (*TriviaAPIClient)(nil)

func NewTriviaAPIClient(baseURL, apiKey string, httpClient *http.Client) *TriviaAPIClient {
	if baseURL == "" {
		baseURL = "https://the-trivia-api.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &TriviaAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type triviaAPIQuestion struct {
	Category string `json:"category"`
	Question struct {
		Text string `json:"text"`
	} `json:"question"`
	Difficulty string `json:"difficulty"`
	Correct    string `json:"correctAnswer"`
}

func (c *TriviaAPIClient) Name() string { return "triviaapi" }

func (c *TriviaAPIClient) Fetch(ctx context.Context, amount int) ([]Item, error) {
	values := url.Values{}
	values.Set("limit", fmt.Sprint(amount))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v2/questions?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("triviaapi non-200: %d", resp.StatusCode)
	}

	var payload []triviaAPIQuestion
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode triviaapi response: %w", err)
	}

	items := make([]Item, 0, len(payload))
	for _, q := range payload {
		items = append(items, newItem(categoryLabel(q.Category), q.Question.Text, q.Correct, q.Difficulty))
	}
	return items, nil
}

// categoryLabel turns slugs such as "film_and_tv" into "Film And Tv".
func categoryLabel(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
