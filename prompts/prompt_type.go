// Package prompts provides the instruction templates sent to the answering
// model and the context assembly that grounds them.
package prompts

// PromptType represents the type/category of a prompt.
type PromptType string

const (
	// Question answering over retrieved context.
	PromptTypeQuestionAnswer PromptType = "text_qa"

	// Whole-document operations.
	PromptTypeSummary         PromptType = "summary"
	PromptTypeSampleQuestions PromptType = "sample_questions"
	PromptTypeQuiz            PromptType = "quiz"

	// Custom (default)
	PromptTypeCustom PromptType = "custom"
)

// String returns the string representation of the prompt type.
func (pt PromptType) String() string {
	return string(pt)
}
