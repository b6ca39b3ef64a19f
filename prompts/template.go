package prompts

import (
	"regexp"
	"strings"

	"github.com/aqua777/ragspace/llm"
)

// templateVarRegex matches {variable} placeholders in templates.
var templateVarRegex = regexp.MustCompile(`\{(\w+)\}`)

// GetTemplateVars extracts variable names from a template string.
func GetTemplateVars(template string) []string {
	matches := templateVarRegex.FindAllStringSubmatch(template, -1)
	vars := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			vars = append(vars, match[1])
			seen[match[1]] = true
		}
	}
	return vars
}

// FormatString formats a template string with the given variables.
func FormatString(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		placeholder := "{" + key + "}"
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// BasePromptTemplate is the interface for prompt templates.
type BasePromptTemplate interface {
	// Format formats the prompt into a string.
	Format(vars map[string]string) string
	// FormatMessages formats the prompt into chat messages.
	FormatMessages(vars map[string]string) []llm.ChatMessage
	// GetTemplate returns the raw template string.
	GetTemplate() string
	// GetTemplateVars returns the variable names in the template.
	GetTemplateVars() []string
	// GetPromptType returns the prompt type.
	GetPromptType() PromptType
}

// PromptTemplate is a string-based prompt template with {variable}
// placeholders.
type PromptTemplate struct {
	Template     string
	TemplateVars []string
	PromptType   PromptType

	// SystemPrompt, when non-empty, is prepended as a system message by
	// FormatMessages.
	SystemPrompt string
}

// NewPromptTemplate creates a new PromptTemplate.
func NewPromptTemplate(template string, promptType PromptType) *PromptTemplate {
	return &PromptTemplate{
		Template:     template,
		TemplateVars: GetTemplateVars(template),
		PromptType:   promptType,
	}
}

// WithSystemPrompt returns a copy of the template that carries a system
// instruction.
func (pt *PromptTemplate) WithSystemPrompt(system string) *PromptTemplate {
	cp := *pt
	cp.SystemPrompt = system
	return &cp
}

// Format formats the prompt into a string.
func (pt *PromptTemplate) Format(vars map[string]string) string {
	return FormatString(pt.Template, vars)
}

// FormatMessages formats the prompt into chat messages: an optional system
// message followed by the filled template as a user message.
func (pt *PromptTemplate) FormatMessages(vars map[string]string) []llm.ChatMessage {
	var messages []llm.ChatMessage
	if pt.SystemPrompt != "" {
		messages = append(messages, llm.NewSystemMessage(pt.SystemPrompt))
	}
	messages = append(messages, llm.NewUserMessage(pt.Format(vars)))
	return messages
}

// GetTemplate returns the raw template string.
func (pt *PromptTemplate) GetTemplate() string {
	return pt.Template
}

// GetTemplateVars returns the variable names in the template.
func (pt *PromptTemplate) GetTemplateVars() []string {
	return pt.TemplateVars
}

// GetPromptType returns the prompt type.
func (pt *PromptTemplate) GetPromptType() PromptType {
	return pt.PromptType
}

var _ BasePromptTemplate = (*PromptTemplate)(nil)
