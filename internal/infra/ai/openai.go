package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

const emitQuestionsTool = "emit_questions"

const systemPrompt = "You are an expert flashcard author. Write clear multiple choice questions " +
	"with exactly 4 distinct options each. The answer must be copied verbatim from the options."

// OpenAIClient generates questions with the OpenAI chat completion API using a forced tool call.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewOpenAIClient creates an OpenAIClient. baseURL may be empty to use the public API.
func NewOpenAIClient(apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// GenerateQuestions asks for questions about a topic.
func (c *OpenAIClient) GenerateQuestions(ctx context.Context, req entities.GenerateQuestionsRequest) ([]entities.AIQuestion, error) {
	return c.complete(ctx, topicPrompt(req), msgGenerateFailed)
}

// GenerateFromContent asks for questions drawn from the given text.
func (c *OpenAIClient) GenerateFromContent(ctx context.Context, req entities.GenerateFromContentRequest) ([]entities.AIQuestion, error) {
	return c.complete(ctx, contentPrompt(req), msgGenerateFromContentFailed)
}

func (c *OpenAIClient) complete(ctx context.Context, prompt, fallback string) ([]entities.AIQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        emitQuestionsTool,
				Description: "Return the generated flashcards",
				Parameters:  questionsSchema,
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: emitQuestionsTool},
		},
	})
	if err != nil {
		return nil, c.mapError(ctx, err, fallback)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrNoQuestions
	}

	call := resp.Choices[0].Message.ToolCalls[0]
	if call.Function.Name != emitQuestionsTool {
		return nil, fmt.Errorf("unexpected tool call %q: %w", call.Function.Name, ErrNoQuestions)
	}

	var args struct {
		Questions *[]entities.AIQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w: %w", entities.ErrRemoteUnavailable, err)
	}
	if args.Questions == nil {
		return nil, ErrNoQuestions
	}

	c.logger.Debug("openai questions received", zap.Int("count", len(*args.Questions)), zap.String("model", c.model))
	return *args.Questions, nil
}

func (c *OpenAIClient) mapError(ctx context.Context, err error, fallback string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return &ServiceError{StatusCode: apiErr.HTTPStatusCode, Message: msg}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &ServiceError{StatusCode: reqErr.HTTPStatusCode, Message: fallback}
	}

	c.logger.Warn("openai request failed", zap.Error(err))
	return transportError(ctx, "create chat completion", err)
}

func topicPrompt(req entities.GenerateQuestionsRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple choice questions about %q.", req.Count, req.Topic)
	if req.Difficulty != "" {
		fmt.Fprintf(&b, " Difficulty: %s.", req.Difficulty)
	}
	if len(req.ExistingQuestions) > 0 {
		b.WriteString("\nDo not repeat or rephrase any of these existing questions:\n")
		for _, q := range req.ExistingQuestions {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func contentPrompt(req entities.GenerateFromContentRequest) string {
	return fmt.Sprintf(
		"Generate %d multiple choice questions that test understanding of the following text.\n\n%s",
		req.Count, req.Content,
	)
}

var questionsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{
						"type":        "string",
						"description": "The question text",
					},
					"options": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Four distinct answer options",
					},
					"answer": map[string]any{
						"type":        "string",
						"description": "The correct option, copied verbatim",
					},
					"explanation": map[string]any{
						"type":        "string",
						"description": "Why the answer is correct",
					},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []string{"easy", "medium", "hard"},
					},
					"category": map[string]any{
						"type": "string",
					},
				},
				"required": []string{"question", "options", "answer"},
			},
		},
	},
	"required": []string{"questions"},
}
