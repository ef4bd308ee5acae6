// Package wikitext provides regex-based extraction helpers for raw MediaWiki
// markup: category links, internal page links, and keyword sentence lookup.
// Full wikitext rendering is intentionally out of scope.
package wikitext

import (
	"regexp"
	"strings"
)

var (
	categoryRe = regexp.MustCompile(`\[\[Category:([^\]]+)\]\]`)
	linkRe     = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

	// Sentence boundary: terminal punctuation followed by whitespace.
	// An approximation; abbreviations like "Dr. Who" split too eagerly,
	// which is acceptable for keyword context extraction.
	sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)
)

// ExtractCategories returns the category names of all [[Category:Name]]
// links in the given wikitext, in order of appearance.
func ExtractCategories(text string) []string {
	matches := categoryRe.FindAllStringSubmatch(text, -1)
	categories := make([]string, 0, len(matches))
	for _, m := range matches {
		categories = append(categories, m[1])
	}
	return categories
}

// ExtractLinks returns the target page titles of all internal [[...]] links
// in the given wikitext, in order of appearance. A display alias after a
// pipe and a #fragment suffix are stripped, and the result is trimmed.
func ExtractLinks(text string) []string {
	matches := linkRe.FindAllStringSubmatch(text, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		target := m[1]
		if idx := strings.Index(target, "|"); idx >= 0 {
			target = target[:idx]
		}
		if idx := strings.Index(target, "#"); idx >= 0 {
			target = target[:idx]
		}
		links = append(links, strings.TrimSpace(target))
	}
	return links
}

// SplitSentences splits text into sentences at terminal punctuation
// followed by whitespace. The punctuation stays with its sentence.
func SplitSentences(text string) []string {
	locs := sentenceEndRe.FindAllStringIndex(text, -1)
	sentences := make([]string, 0, len(locs)+1)
	start := 0
	for _, loc := range locs {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// SentencesWithKeyword returns all sentences of text that contain keyword
// (case-insensitive substring match), joined by single spaces. Returns an
// empty string when no sentence matches.
func SentencesWithKeyword(text, keyword string) string {
	lowered := strings.ToLower(keyword)
	var kept []string
	for _, sentence := range SplitSentences(text) {
		if strings.Contains(strings.ToLower(sentence), lowered) {
			kept = append(kept, sentence)
		}
	}
	return strings.Join(kept, " ")
}
