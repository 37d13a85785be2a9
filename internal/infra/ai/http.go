package ai

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

// DefaultTimeout bounds every call to the AI service.
const DefaultTimeout = 30 * time.Second

const (
	pathGenerateQuestions   = "/generate-questions"
	pathGenerateFromContent = "/generate-from-content"
)

// HTTPClient talks to the JSON question generation service.
type HTTPClient struct {
	client  *resty.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewHTTPClient creates a client for the service at baseURL. A zero timeout means DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &HTTPClient{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

type questionsResponse struct {
	Questions *[]entities.AIQuestion `json:"questions"`
	Error     string                 `json:"error"`
}

// GenerateQuestions asks for questions about a topic.
func (c *HTTPClient) GenerateQuestions(ctx context.Context, req entities.GenerateQuestionsRequest) ([]entities.AIQuestion, error) {
	return c.post(ctx, pathGenerateQuestions, req, msgGenerateFailed)
}

// GenerateFromContent asks for questions drawn from the given text.
func (c *HTTPClient) GenerateFromContent(ctx context.Context, req entities.GenerateFromContentRequest) ([]entities.AIQuestion, error) {
	return c.post(ctx, pathGenerateFromContent, req, msgGenerateFromContentFailed)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, fallback string) ([]entities.AIQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out questionsResponse
	started := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post(path)
	if err != nil {
		c.logger.Warn("ai request failed", zap.String("path", path), zap.Error(err))
		return nil, transportError(ctx, "post "+path, err)
	}

	c.logger.Debug("ai response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("took", time.Since(started)),
	)

	if resp.IsError() {
		msg := out.Error
		if msg == "" {
			msg = fallback
		}
		return nil, &ServiceError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if out.Questions == nil {
		return nil, ErrNoQuestions
	}

	return *out.Questions, nil
}
