package prompts

// Default prompt templates for the answering flows.

const (
	// DefaultSystemPromptTmpl fixes the model's role for grounded answering.
	DefaultSystemPromptTmpl = `You are a helpful assistant that answers questions about documents uploaded by the user. Answer using only the provided context. If the context does not contain the answer, say so.`

	// DefaultTextQAPromptTmpl is the user message for a grounded answer.
	DefaultTextQAPromptTmpl = `Context:
{context_str}

Question: {query_str}`
)

// Whole-corpus operations: input is concatenated document text.
const (
	DefaultSampleQuestionsTmpl = `The following is the content of documents uploaded by a user.
---------------------
{context_str}
---------------------
Generate {num_questions} short questions that the documents above can answer. Write one question per line, with no numbering or other decoration.`

	DefaultSummaryPromptTmpl = `Write a summary of the following. Try to use only the information provided. Try to include as many key details as possible.

{context_str}

SUMMARY:`

	DefaultQuizPromptTmpl = `The following is the content of documents uploaded by a user.
---------------------
{context_str}
---------------------
Generate a quiz of {num_questions} multiple-choice questions about the documents above. For each question give four options labeled A-D and mark the correct one.`
)
