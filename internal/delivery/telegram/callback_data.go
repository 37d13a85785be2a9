package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer    = "ans"
	actionQuiz      = "quiz"
	actionList      = "list"
	actionGenerated = "gen"
	actionHome      = "home"
)

// Quiz sub-actions.
const (
	quizNext    = "next"
	quizPrev    = "prev"
	quizPause   = "pause"
	quizRestart = "restart"
	quizNew     = "new"
)

// Generated questions sub-actions.
const (
	generatedSave    = "save"
	generatedSaveAll = "all"
)

// maxCallbackDataLen is the Telegram limit for callback_data in bytes.
const maxCallbackDataLen = 64

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 || parts[0] == "" {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildAnswerCallback builds callback data for picking option optionIdx of question questionIdx.
func buildAnswerCallback(questionIdx, optionIdx int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(questionIdx), strconv.Itoa(optionIdx)},
	}.encode()
}

// buildQuizCallback builds callback data for quiz navigation.
func buildQuizCallback(sub string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sub},
	}.encode()
}

// buildListCallback builds callback data for opening a deck page.
func buildListCallback(page int) string {
	return callbackData{
		Action: actionList,
		Params: []string{strconv.Itoa(page)},
	}.encode()
}

// buildSaveGeneratedCallback builds callback data for saving one generated question.
func buildSaveGeneratedCallback(i int) string {
	return callbackData{
		Action: actionGenerated,
		Params: []string{generatedSave, strconv.Itoa(i)},
	}.encode()
}

// buildSaveAllGeneratedCallback builds callback data for saving every pending generated question.
func buildSaveAllGeneratedCallback() string {
	return callbackData{
		Action: actionGenerated,
		Params: []string{generatedSaveAll},
	}.encode()
}

func buildHomeCallback() string {
	return actionHome
}
