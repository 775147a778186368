package parser_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"forum-ingestion/internal/parser"
	"forum-ingestion/testing/fixtures"
)

func TestDOMParseFragment(t *testing.T) {
	p := parser.NewDOMExtractor(time.UTC)

	fragment := fixtures.Comment(16970866, 75950, "Asszem", "2000.07.13 21:01:59", "Szia <b>mindenki</b>")

	comment, err := p.ParseFragment(fragment)
	if err != nil {
		t.Fatalf("Failed to parse fragment: %v", err)
	}

	if comment.ID != 16970866 {
		t.Errorf("Expected comment ID 16970866, got %d", comment.ID)
	}
	if comment.SenderID != 75950 {
		t.Errorf("Expected sender ID 75950, got %d", comment.SenderID)
	}
	if comment.SenderName != "Asszem" {
		t.Errorf("Expected sender name 'Asszem', got '%s'", comment.SenderName)
	}
	if !comment.PostedAt.Equal(time.Date(2000, time.July, 13, 21, 1, 59, 0, time.UTC)) {
		t.Errorf("Unexpected posted at %v", comment.PostedAt)
	}
	if !strings.Contains(comment.BodyHTML, "<b>mindenki</b>") {
		t.Errorf("Expected body markup to survive, got %q", comment.BodyHTML)
	}
}

func TestDOMAgreesWithRegex(t *testing.T) {
	dom := parser.NewDOMExtractor(time.UTC)
	re := parser.NewRegexExtractor(time.UTC)

	fragment := fixtures.Comment(5, 6, "Béla", "2019.11.30 23:59:59", "plain text")

	a, err := dom.ParseFragment(fragment)
	if err != nil {
		t.Fatalf("DOM extractor failed: %v", err)
	}
	b, err := re.ParseFragment(fragment)
	if err != nil {
		t.Fatalf("Regex extractor failed: %v", err)
	}

	if a.ID != b.ID || a.SenderID != b.SenderID || a.SenderName != b.SenderName || !a.PostedAt.Equal(b.PostedAt) {
		t.Errorf("Extractors disagree: %+v vs %+v", a, b)
	}
	if a.BodyHTML != b.BodyHTML {
		t.Errorf("Expected identical body for plain text, got %q vs %q", a.BodyHTML, b.BodyHTML)
	}
}

func TestDOMParseFragmentMalformed(t *testing.T) {
	p := parser.NewDOMExtractor(time.UTC)

	tests := map[string]string{
		"no anchor":     `<div class="art_t">x</div>`,
		"no profile":    `<a name="1"></a><strong>a</strong>`,
		"no bookmark":   `<a name="1"></a><a href="/User/UserDescription?u=2"><strong>a</strong></a><div class="art_t">x</div>`,
		"negative user": strings.Replace(fixtures.Comment(1, 2, "a", "2020.01.01 00:00:00", "b"), "?u=2", "?u=-2", 1),
	}

	for name, fragment := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.ParseFragment(fragment)
			var malformed *parser.MalformedFragmentError
			if !errors.As(err, &malformed) {
				t.Errorf("Expected MalformedFragmentError, got %v", err)
			}
		})
	}
}
