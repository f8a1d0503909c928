package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LoadDocument reads a document from disk and returns its cleaned plain
// text. Plain-text and Markdown files pass through text cleaning; HTML
// files additionally go through markup extraction first.
func LoadDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", "":
		return CleanText(string(content)), nil
	case ".html", ".htm":
		text, err := ExtractHTMLText(string(content))
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

// ExtractHTMLText pulls the readable text out of an HTML document,
// dropping scripts, styles, and navigation chrome.
func ExtractHTMLText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, footer, noscript").Remove()

	root := doc.Find("main")
	if root.Length() == 0 {
		root = doc.Find("body")
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	root.Find("h1, h2, h3, h4, p, li, td, pre").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	// Unstructured markup still yields the document's raw text.
	if sb.Len() == 0 {
		return strings.TrimSpace(root.Text()), nil
	}
	return sb.String(), nil
}
