package extract

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrUnreadableDocument is returned when no text can be recovered from a
// document at all. It is the only terminal failure of the pipeline: every
// later condition degrades into a routed outcome instead.
var ErrUnreadableDocument = errors.New("unreadable document")

// RawTextExtractor converts an uploaded document into plain text.
// Binary formats (PDF and friends) are handled by an external collaborator
// implementing this same contract.
type RawTextExtractor interface {
	ExtractRawText(documentBytes []byte, mimeHint string) (string, error)
}

// DocumentReader is the built-in RawTextExtractor for plain-text and HTML
// documents
type DocumentReader struct{}

// NewDocumentReader creates a new document reader
func NewDocumentReader() *DocumentReader {
	return &DocumentReader{}
}

// ExtractRawText extracts text from a document. The mime hint can be a MIME
// type ("text/plain") or a file extension (".txt"); when absent the content
// is sniffed. Empty or undecodable content yields ErrUnreadableDocument.
func (r *DocumentReader) ExtractRawText(documentBytes []byte, mimeHint string) (string, error) {
	if len(documentBytes) == 0 {
		return "", ErrUnreadableDocument
	}

	hint := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(mimeHint), "."))

	var text string
	switch hint {
	case "text/plain", "txt", "text":
		text = decodeText(documentBytes)
	case "text/html", "html", "htm":
		text = htmlToText(documentBytes)
	case "":
		if looksLikeHTML(documentBytes) {
			text = htmlToText(documentBytes)
		} else {
			text = decodeText(documentBytes)
		}
	default:
		return "", ErrUnreadableDocument
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrUnreadableDocument
	}
	return text, nil
}

// decodeText returns the bytes as UTF-8, falling back to a Latin-1
// reinterpretation when the content is not valid UTF-8
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// looksLikeHTML sniffs for an HTML document start
func looksLikeHTML(data []byte) bool {
	head := strings.ToLower(string(data[:min(len(data), 256)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

// htmlToText extracts visible text from HTML, skipping scripts and styles.
// Block-level elements become line breaks so that label/value form layouts
// survive the conversion.
func htmlToText(data []byte) string {
	doc, err := html.Parse(strings.NewReader(decodeText(data)))
	if err != nil {
		return ""
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(doc)
	return collapseBlankLines(buf.String())
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "tr", "li", "table", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6", "pre", "blockquote":
		return true
	}
	return false
}

// collapseBlankLines trims trailing spaces and squeezes runs of blank lines
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if !blank {
				out = append(out, line)
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
