package knowledge

import (
	"fmt"
	"strings"

	"pochy-chat/internal/model"
)

const excerptSeparator = "\n\n---\n\n"

type Base struct {
	docs       []model.Document
	basePrompt string
}

func New(docs []model.Document, assistantName string) *Base {
	if strings.TrimSpace(assistantName) == "" {
		assistantName = DefaultAssistantName
	}
	b := &Base{docs: docs}
	b.basePrompt = buildBasePrompt(assistantName, b.Summaries())
	return b
}

func (b *Base) Documents() []model.Document {
	return b.docs
}

// Search scans the corpus with literal substring matching and returns the
// matching excerpts joined by a separator, or "" when nothing matched.
// A document matches when one of its keywords occurs in the query or the
// query occurs in its title or description. Chapters are matched
// independently against their title and content.
func (b *Base) Search(query string) string {
	q := strings.ToLower(query)
	var results []string

	for _, doc := range b.docs {
		if documentMatches(doc, q) {
			results = append(results, fmt.Sprintf("**%s** by %s\n%s", doc.Title, doc.Author, doc.Description))
		}

		for _, ch := range doc.Chapters {
			if strings.Contains(strings.ToLower(ch.Title), q) || strings.Contains(strings.ToLower(ch.Content), q) {
				results = append(results, fmt.Sprintf("From \"%s\" - %s:\n%s", doc.Title, ch.Title, ch.Content))
			}
		}
	}

	return strings.Join(results, excerptSeparator)
}

func documentMatches(doc model.Document, q string) bool {
	for _, kw := range doc.Keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(doc.Title), q) ||
		strings.Contains(strings.ToLower(doc.Description), q)
}
