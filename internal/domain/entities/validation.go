package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule names a single question validity rule.
type Rule string

const (
	RuleEmptyQuestion      Rule = "empty_question"
	RuleTooFewOptions      Rule = "too_few_options"
	RuleEmptyOption        Rule = "empty_option"
	RuleDuplicateOptions   Rule = "duplicate_options"
	RuleEmptyAnswer        Rule = "empty_answer"
	RuleAnswerNotInOptions Rule = "answer_not_in_options"
	RuleInvalidDifficulty  Rule = "invalid_difficulty"
)

// Description returns a human readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case RuleEmptyQuestion:
		return "question text is empty"
	case RuleTooFewOptions:
		return "at least two options are required"
	case RuleEmptyOption:
		return "options must not be empty"
	case RuleDuplicateOptions:
		return "options cannot contain duplicates"
	case RuleEmptyAnswer:
		return "answer is empty"
	case RuleAnswerNotInOptions:
		return "answer must match one of the options"
	case RuleInvalidDifficulty:
		return "difficulty must be easy, medium or hard"
	default:
		return string(r)
	}
}

// ValidationError lists every rule a question violates.
type ValidationError struct {
	Rules []Rule
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Rules))
	for _, r := range e.Rules {
		names = append(names, string(r))
	}
	return "invalid question: " + strings.Join(names, ", ")
}

// Has reports whether the error contains rule r.
func (e *ValidationError) Has(r Rule) bool {
	for _, rule := range e.Rules {
		if rule == r {
			return true
		}
	}
	return false
}

const tagAnswerInOptions = "answer_in_options"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(Question)
		if q.Answer != "" && !q.HasOption(q.Answer) {
			sl.ReportError(q.Answer, "answer", "Answer", tagAnswerInOptions, "")
		}
	}, Question{})
	return v
}

// ValidateQuestion normalizes q and checks it against the question validity rules.
// It returns the normalized question, or a *ValidationError.
func ValidateQuestion(q Question) (Question, error) {
	n := q.Normalized()

	err := validate.Struct(n)
	if err == nil {
		return n, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return n, fmt.Errorf("validate question: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		rule := ruleFor(fe)
		if !verr.Has(rule) {
			verr.Rules = append(verr.Rules, rule)
		}
	}

	return n, verr
}

// IsValidQuestion reports whether q passes ValidateQuestion.
func IsValidQuestion(q Question) bool {
	_, err := ValidateQuestion(q)
	return err == nil
}

func ruleFor(fe validator.FieldError) Rule {
	field := fe.StructField()
	switch {
	case field == "Question":
		return RuleEmptyQuestion
	case field == "Options" && fe.Tag() == "unique":
		return RuleDuplicateOptions
	case field == "Options":
		return RuleTooFewOptions
	case strings.HasPrefix(field, "Options["):
		return RuleEmptyOption
	case field == "Answer" && fe.Tag() == tagAnswerInOptions:
		return RuleAnswerNotInOptions
	case field == "Answer":
		return RuleEmptyAnswer
	case field == "Difficulty":
		return RuleInvalidDifficulty
	default:
		return Rule(strings.ToLower(field) + "_" + fe.Tag())
	}
}
