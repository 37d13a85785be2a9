package entities

// GenerateQuestionsRequest asks the AI service for questions about a topic.
type GenerateQuestionsRequest struct {
	Topic             string     `json:"topic"`
	Difficulty        Difficulty `json:"difficulty,omitempty"`
	Count             int        `json:"count"`
	ExistingQuestions []string   `json:"existingQuestions,omitempty"` // texts the service should not repeat
}

// GenerateFromContentRequest asks the AI service for questions drawn from free text.
type GenerateFromContentRequest struct {
	Content string `json:"content"`
	Count   int    `json:"count"`
}
