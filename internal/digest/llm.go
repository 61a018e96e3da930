package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ew616/project-dailyupdate/internal/classify"
	"github.com/ew616/project-dailyupdate/internal/types"
)

// maxPromptArticles caps how many articles feed one synthesis call.
const maxPromptArticles = 12

// retryConfig controls the API retry loop.
type retryConfig struct {
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	timeout        time.Duration
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		maxRetries:     2,
		initialBackoff: 2 * time.Second,
		maxBackoff:     30 * time.Second,
		timeout:        60 * time.Second,
	}
}

// LLMSynthesizer writes topic sections with Claude instead of listing
// headlines.
type LLMSynthesizer struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	retry     retryConfig
}

// NewLLMSynthesizer creates a synthesizer using the given API key and
// model.
func NewLLMSynthesizer(apiKey, model string, maxTokens int64) *LLMSynthesizer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &LLMSynthesizer{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
		retry:     defaultRetryConfig(),
	}
}

// Synthesize produces one topic's section content.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, topic string, articles []*types.Article) (string, error) {
	prompt := buildPrompt(topic, articles)

	var response *anthropic.Message
	err := retryWithBackoff(ctx, s.retry, "synthesize "+topic, func(attemptCtx context.Context) error {
		resp, apiErr := s.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(s.model),
			MaxTokens: s.maxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if apiErr != nil {
			return apiErr
		}
		response = resp
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model returned no text content")
	}
	return text, nil
}

// buildPrompt lays out the numbered article context and the per-topic
// instruction.
func buildPrompt(topic string, articles []*types.Article) string {
	texts := make([]string, 0, maxPromptArticles)
	for i, a := range top(articles, maxPromptArticles) {
		text := fmt.Sprintf("[%d] %s (%s)", i+1, a.Title, a.Source)
		if a.Summary != "" {
			text += "\n" + a.Summary
		}
		texts = append(texts, text)
	}
	articlesContext := strings.Join(texts, "\n\n")

	if topic == types.TopicSports {
		teams := strings.Join(classify.TeamNames(), ", ")
		return fmt.Sprintf("Create a brief sports summary for someone who follows: %s.\nGroup by team, 2-3 sentences each. Be concise.\n\nArticles:\n%s\n\nSummary:", teams, articlesContext)
	}
	return fmt.Sprintf("Summarize these %s articles in 2-3 paragraphs. Lead with the biggest story. Be concise and cite sources.\n\nArticles:\n%s\n\nSummary:", topic, articlesContext)
}

// retryWithBackoff executes an operation with retry and exponential
// backoff. Non-retriable errors return immediately.
func retryWithBackoff(ctx context.Context, cfg retryConfig, operation string, fn func(context.Context) error) error {
	var lastErr error
	backoff := cfg.initialBackoff

	for attempt := 0; attempt <= cfg.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			if attempt > 0 {
				slog.Info("call succeeded after retries", "operation", operation, "retries", attempt)
			}
			return nil
		}
		lastErr = err

		if !isRetriableError(err) {
			return err
		}
		if attempt == cfg.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s failed: context canceled: %w", operation, ctx.Err())
		}

		slog.Warn("call failed, retrying", "operation", operation,
			"attempt", attempt+1, "max_attempts", cfg.maxRetries+1, "backoff", backoff, "error", err)

		select {
		case <-time.After(backoff):
			backoff = backoff * 2
			if backoff > cfg.maxBackoff {
				backoff = cfg.maxBackoff
			}
		case <-ctx.Done():
			return fmt.Errorf("%s failed: context canceled during backoff: %w", operation, ctx.Err())
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, cfg.maxRetries+1, lastErr)
}

// isRetriableError reports whether an error is transient. Auth and
// request errors are not worth retrying; rate limits, server errors and
// network hiccups are.
func isRetriableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()

	if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
		return true
	}
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "504") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "gateway timeout") {
		return true
	}
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "network") {
		return true
	}

	return false
}
