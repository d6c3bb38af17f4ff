package knowledge

import (
	"fmt"
	"strings"
)

const DefaultAssistantName = "DeepSeek Chatbot"

const relevantHeading = "\n\n**Relevant Pochy Books Content:**\n"

const promptTemplate = `You are a helpful and knowledgeable AI assistant named "%s". You have two main areas of expertise:

1. **Pochy Books Expert**: You have comprehensive knowledge about Pochy books and can answer any questions about their content, themes, and teachings. Here is your knowledge base:

%s

2. **General Knowledge Assistant**: Beyond Pochy books, you can also answer general knowledge questions on any topic, similar to a helpful encyclopedia or Wikipedia.

Guidelines for responses:
- When asked about Pochy books, prioritize information from the books
- Be conversational, friendly, and helpful
- Provide accurate and detailed answers
- If you're unsure about something, say so honestly
- Use markdown formatting for better readability (bold, lists, code blocks when appropriate)
- Keep responses concise but informative
- If asked about specific Pochy book content, reference the relevant book and chapter

Remember: You are here to help users learn and discover knowledge, just like Pochy teaches in the books!`

// Summaries renders every document with its per-chapter summary list.
func (b *Base) Summaries() string {
	blocks := make([]string, 0, len(b.docs))
	for _, doc := range b.docs {
		lines := make([]string, 0, len(doc.Chapters))
		for _, ch := range doc.Chapters {
			lines = append(lines, fmt.Sprintf("  - %s: %s", ch.Title, ch.Summary))
		}
		blocks = append(blocks, fmt.Sprintf("**%s**\n%s\nChapters:\n%s", doc.Title, doc.Description, strings.Join(lines, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

// BasePrompt is the system instruction without any retrieved excerpts.
func (b *Base) BasePrompt() string {
	return b.basePrompt
}

// SystemPrompt returns BasePrompt with the excerpts matching query appended
// under a labelled section, if there are any.
func (b *Base) SystemPrompt(query string) string {
	excerpts := b.Search(query)
	if excerpts == "" {
		return b.basePrompt
	}
	return b.basePrompt + relevantHeading + excerpts
}

func buildBasePrompt(assistantName, summaries string) string {
	return fmt.Sprintf(promptTemplate, assistantName, summaries)
}
