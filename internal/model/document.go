package model

// Document is one book of the bundled corpus.
type Document struct {
	Title       string
	Author      string
	Description string
	Keywords    []string
	Chapters    []Chapter
}

type Chapter struct {
	Title   string
	Content string
	Summary string
}
