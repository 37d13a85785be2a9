package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"
)

var (
	errCardFormat = errors.New("flashcard must look like: question | option; option | answer")
	errMissingID  = errors.New("flashcard id is missing")
)

const (
	cardFieldSep  = "|"
	cardOptionSep = ";"
)

// parseCard reads "question | option; option; ... | answer".
// Fields are not validated here beyond their count.
func parseCard(s string) (entities.Question, error) {
	parts := strings.Split(s, cardFieldSep)
	if len(parts) != 3 {
		return entities.Question{}, errCardFormat
	}

	var options []string
	for _, opt := range strings.Split(parts[1], cardOptionSep) {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}

	return entities.Question{
		Question: strings.TrimSpace(parts[0]),
		Options:  options,
		Answer:   strings.TrimSpace(parts[2]),
	}, nil
}

// parseEdit reads "<id> question | option; ... | answer".
func parseEdit(s string) (string, entities.Question, error) {
	s = strings.TrimSpace(s)
	id, rest, _ := strings.Cut(s, " ")
	if id == "" || strings.Contains(id, cardFieldSep) {
		return "", entities.Question{}, errMissingID
	}

	q, err := parseCard(rest)
	if err != nil {
		return "", entities.Question{}, err
	}
	return id, q, nil
}

// parseGenerateArgs reads "<topic> [easy|medium|hard] [count]". The optional
// arguments are taken from the end so the topic may contain spaces.
func parseGenerateArgs(s string) (topic string, difficulty entities.Difficulty, count int) {
	fields := strings.Fields(s)

	if n := len(fields); n > 1 {
		if c, err := strconv.Atoi(fields[n-1]); err == nil && c > 0 {
			count = c
			fields = fields[:n-1]
		}
	}

	if n := len(fields); n > 1 {
		if d, ok := entities.ParseDifficulty(fields[n-1]); ok {
			difficulty = d
			fields = fields[:n-1]
		}
	}

	return strings.Join(fields, " "), difficulty, count
}
