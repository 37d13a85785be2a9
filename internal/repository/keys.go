package repository

import "strconv"

// FlashcardsKey holds the JSON-encoded local deck.
const FlashcardsKey = "flashcards"

const resultsKeyPrefix = "quiz_results:"

// ResultsKey returns the key of the last quiz result of a chat.
func ResultsKey(chatID int64) string {
	return resultsKeyPrefix + strconv.FormatInt(chatID, 10)
}
