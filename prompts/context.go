package prompts

import "strings"

// ContentLabel prefixes every retrieved chunk in the assembled context.
const ContentLabel = "Content: "

// BuildContext concatenates retrieved chunk texts, in ranked order, into a
// single context string. Each chunk is prefixed with ContentLabel and chunks
// are separated by a blank line. An empty retrieval produces an empty string,
// not an error: the caller decides whether to answer ungrounded.
func BuildContext(chunkTexts []string) string {
	if len(chunkTexts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chunkTexts))
	for _, text := range chunkTexts {
		parts = append(parts, ContentLabel+text)
	}
	return strings.Join(parts, "\n\n")
}

// BuildGroundedUserMessage composes the user message for a grounded answer.
// With empty context the bare prompt is sent, leaving the model to answer
// from its role instruction alone.
func BuildGroundedUserMessage(contextStr, prompt string) string {
	if contextStr == "" {
		return prompt
	}
	return FormatString(DefaultTextQAPromptTmpl, map[string]string{
		"context_str": contextStr,
		"query_str":   prompt,
	})
}
