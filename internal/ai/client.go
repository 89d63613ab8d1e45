package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"lingotaboo/internal/config"
	"lingotaboo/internal/models"
)

// Client talks to a chat-completions style LLM API. It implements
// Translator, Evaluator and ExampleGenerator. Authentication is either a
// bearer API key or an OAuth2 client-credentials grant, depending on
// configuration.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client from config. When an OAuth2 token URL is set
// the underlying http.Client handles token refresh; otherwise requests
// carry the static API key.
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	apiKey := cfg.AIAPIKey

	if cfg.AIOAuthTokenURL != "" {
		oauthCfg := &clientcredentials.Config{
			ClientID:     cfg.AIOAuthClientID,
			ClientSecret: cfg.AIOAuthSecret,
			TokenURL:     cfg.AIOAuthTokenURL,
		}
		httpClient = oauthCfg.Client(context.Background())
		httpClient.Timeout = timeout
		apiKey = ""
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.AIBaseURL, "/"),
		model:      cfg.AIModel,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// complete performs one chat-completions call and returns the reply text
// plus token usage.
func (c *Client) complete(ctx context.Context, system, user string) (string, models.TokenUsage, error) {
	var usage models.TokenUsage

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", usage, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", usage, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", usage, fmt.Errorf("ai request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", usage, fmt.Errorf("ai response read failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", usage, fmt.Errorf("ai request returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", usage, fmt.Errorf("ai response parse failed: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", usage, fmt.Errorf("ai response contained no choices")
	}

	usage.PromptTokens = parsed.Usage.PromptTokens
	usage.CompletionTokens = parsed.Usage.CompletionTokens

	return parsed.Choices[0].Message.Content, usage, nil
}

// extractJSON trims markdown code fences that some models wrap around
// JSON replies.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

type translationPayload struct {
	Words      []string `json:"words"`
	AnswerWord string   `json:"answer_word"`
}

// Translate renders the key words and answer word into the target language.
// The reply must be index-aligned with the input; anything else is an error
// so session start stays atomic.
func (c *Client) Translate(ctx context.Context, words []string, answerWord, from, to string) (*Translation, error) {
	system := "You are a translation assistant for a word game. " +
		"Reply with a single JSON object: {\"words\": [...], \"answer_word\": \"...\"}. " +
		"Translate every word in order, one output word per input word."
	user := fmt.Sprintf("Translate from %s to %s.\nWords: %s\nAnswer word: %s",
		from, to, strings.Join(words, ", "), answerWord)

	content, usage, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var payload translationPayload
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return nil, fmt.Errorf("translation parse failed: %w", err)
	}
	if len(payload.Words) != len(words) {
		return nil, fmt.Errorf("translation returned %d words, expected %d", len(payload.Words), len(words))
	}
	if strings.TrimSpace(payload.AnswerWord) == "" {
		return nil, fmt.Errorf("translation returned empty answer word")
	}

	return &Translation{
		Words:      payload.Words,
		AnswerWord: payload.AnswerWord,
		Usage:      usage,
	}, nil
}

type evaluationPayload struct {
	WordsUsed       []string `json:"words_used"`
	AnswerMentioned bool     `json:"answer_mentioned"`
	Quality         string   `json:"quality"`
}

// Evaluate asks the oracle which key words the description used. A failed
// call is returned as an error; a successful call whose reply cannot be
// parsed degrades to the deterministic containment fallback.
func (c *Client) Evaluate(ctx context.Context, description string, keyWords []string, answerWord, language string) (*Evaluation, error) {
	system := "You judge a Taboo-style word game in " + language + ". " +
		"Given a player's description, decide which key words it used (allow " +
		"conjugations and close synonyms) and whether the secret answer word was mentioned. " +
		"Reply with a single JSON object: {\"words_used\": [...], \"answer_mentioned\": bool, \"quality\": \"...\"}. " +
		"Report used words with the exact spelling from the key word list."
	user := fmt.Sprintf("Key words: %s\nAnswer word: %s\nDescription: %s",
		strings.Join(keyWords, ", "), answerWord, description)

	content, usage, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		// The oracle answered but not in a usable shape. Degrade to
		// substring matching rather than failing the submission.
		eval := EvaluateByContainment(description, keyWords, answerWord)
		eval.Usage = usage
		return eval, nil
	}

	return &Evaluation{
		WordsUsed:       MatchKeyWords(payload.WordsUsed, keyWords),
		AnswerMentioned: payload.AnswerMentioned,
		Quality:         payload.Quality,
		Usage:           usage,
	}, nil
}

// MatchKeyWords normalizes reported words back onto the key word list in
// canonical spelling, dropping anything the oracle invented.
func MatchKeyWords(reported, keyWords []string) []string {
	canonical := make(map[string]string, len(keyWords))
	for _, kw := range keyWords {
		canonical[strings.ToLower(strings.TrimSpace(kw))] = kw
	}

	var matched []string
	seen := make(map[string]bool, len(reported))
	for _, word := range reported {
		key := strings.ToLower(strings.TrimSpace(word))
		if kw, ok := canonical[key]; ok && !seen[key] {
			matched = append(matched, kw)
			seen[key] = true
		}
	}
	return matched
}

// GenerateExample produces an exemplar description that uses every key
// word without mentioning the answer word.
func (c *Client) GenerateExample(ctx context.Context, answerWord string, keyWords []string, language string) (string, models.TokenUsage, error) {
	system := "You write example answers for a Taboo-style word game in " + language + ". " +
		"Write one short description (2-3 sentences) of the secret word that naturally uses " +
		"every key word and never says the secret word itself. Reply with the description only."
	user := fmt.Sprintf("Secret word: %s\nKey words: %s", answerWord, strings.Join(keyWords, ", "))

	content, usage, err := c.complete(ctx, system, user)
	if err != nil {
		return "", usage, err
	}

	return strings.TrimSpace(content), usage, nil
}
