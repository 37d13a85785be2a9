package entities

import "fmt"

// Document is a loosely typed record of a remote collection.
type Document struct {
	ID     string
	Fields map[string]any
}

// QuestionFields converts a question into remote document fields. The ID is not part of the fields.
func QuestionFields(q Question) map[string]any {
	options := make([]any, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, opt)
	}

	fields := map[string]any{
		"question": q.Question,
		"options":  options,
		"answer":   q.Answer,
	}
	if q.Category != "" {
		fields["category"] = q.Category
	}
	if q.Difficulty != "" {
		fields["difficulty"] = string(q.Difficulty)
	}

	return fields
}

// QuestionUpdateFields is QuestionFields for a merge update: cleared optional fields are
// sent as nil so the remote drops them.
func QuestionUpdateFields(q Question) map[string]any {
	fields := QuestionFields(q)
	for _, key := range []string{"category", "difficulty"} {
		if _, ok := fields[key]; !ok {
			fields[key] = nil
		}
	}
	return fields
}

// QuestionFromDocument maps a document onto a Question without validating it.
// Missing or mistyped fields become zero values so that validation rejects them.
func QuestionFromDocument(doc Document) Question {
	q := Question{
		ID:       doc.ID,
		Question: stringField(doc.Fields, "question"),
		Answer:   stringField(doc.Fields, "answer"),
		Category: stringField(doc.Fields, "category"),
	}
	q.Difficulty, _ = ParseDifficulty(stringField(doc.Fields, "difficulty"))

	switch opts := doc.Fields["options"].(type) {
	case []any:
		for _, o := range opts {
			q.Options = append(q.Options, fmt.Sprint(o))
		}
	case []string:
		q.Options = append(q.Options, opts...)
	}

	return q
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
