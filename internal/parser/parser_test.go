package parser_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"forum-ingestion/internal/parser"
	"forum-ingestion/testing/fixtures"
)

var budapest = time.FixedZone("CET", 3600)

func TestParseFragment(t *testing.T) {
	p := parser.NewRegexExtractor(budapest)

	body := `Szia!<br />Ez egy <i>teszt</i>, ékezetekkel: őű.`
	fragment := fixtures.Comment(16970866, 75950, "Asszem", "2000.07.13 21:01:59", body)

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
	want := time.Date(2000, time.July, 13, 21, 1, 59, 0, budapest)
	if !comment.PostedAt.Equal(want) {
		t.Errorf("Expected posted at %v, got %v", want, comment.PostedAt)
	}
	if comment.BodyHTML != body {
		t.Errorf("Expected body to be returned byte for byte, got %q", comment.BodyHTML)
	}
}

func TestParseFragmentKeepsSenderMarkup(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	fragment := fixtures.Comment(2, 3, "Kis &amp; Nagy", "2021.01.02 03:04:05", "x")

	comment, err := p.ParseFragment(fragment)
	if err != nil {
		t.Fatalf("Failed to parse fragment: %v", err)
	}
	if comment.SenderName != "Kis &amp; Nagy" {
		t.Errorf("Expected escaped sender name to be kept, got '%s'", comment.SenderName)
	}
}

func TestParseFragmentMalformed(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	tests := map[string]string{
		"non-numeric anchor": strings.Replace(
			fixtures.Comment(1, 2, "a", "2020.01.01 00:00:00", "b"), `<a name="1">`, `<a name="x">`, 1),
		"zero comment id": fixtures.Comment(0, 2, "a", "2020.01.01 00:00:00", "b"),
		"bad date":        fixtures.Comment(1, 2, "a", "2020.13.45 99:00:00", "b"),
		"no body":         `<a name="1"></a><a href="?u=2"><strong>a</strong></a><a rel="bookmark" title="2020.01.01 00:00:00">`,
		"empty":           "",
	}

	for name, fragment := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.ParseFragment(fragment)
			if err == nil {
				t.Fatal("Expected an error, got none")
			}
			var malformed *parser.MalformedFragmentError
			if !errors.As(err, &malformed) {
				t.Errorf("Expected MalformedFragmentError, got %T", err)
			}
		})
	}
}

func TestSplitFragments(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	page := fixtures.ThreadPage(3,
		fixtures.Comment(3, 10, "c", "2020.01.03 00:00:00", "third"),
		fixtures.Comment(2, 10, "b", "2020.01.02 00:00:00", "second"),
		fixtures.Comment(1, 10, "a", "2020.01.01 00:00:00", "first"),
	)

	fragments := p.SplitFragments(page)
	if len(fragments) != 3 {
		t.Fatalf("Expected 3 fragments, got %d", len(fragments))
	}
	for i, want := range []string{"third", "second", "first"} {
		if !strings.Contains(fragments[i], want) {
			t.Errorf("Fragment %d: expected document order, missing %q", i, want)
		}
	}
}

func TestSplitFragmentsEndMarkerWhitespace(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	page := "<!-- hozzaszolas start -->one<!-- hozzaszolas \n\t end -->" +
		"<!-- hozzaszolas start -->two<!-- hozzaszolas end -->"

	fragments := p.SplitFragments(page)
	if len(fragments) != 2 || fragments[0] != "one" || fragments[1] != "two" {
		t.Errorf("Expected [one two], got %q", fragments)
	}
}

func TestSplitFragmentsNone(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	fragments := p.SplitFragments(fixtures.ThreadPage(0))
	if len(fragments) != 0 {
		t.Errorf("Expected no fragments, got %d", len(fragments))
	}
}

func TestParseCommentCount(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	count, err := p.ParseCommentCount(123, fixtures.ThreadPage(4711))
	if err != nil {
		t.Fatalf("Failed to parse comment count: %v", err)
	}
	if count != 4711 {
		t.Errorf("Expected 4711, got %d", count)
	}
}

func TestParseCommentCountMissing(t *testing.T) {
	p := parser.NewRegexExtractor(time.UTC)

	_, err := p.ParseCommentCount(42, "<html><body>Nincs ilyen topik</body></html>")

	var notFound *parser.CommentCountNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected CommentCountNotFoundError, got %v", err)
	}
	if notFound.ThreadID != 42 {
		t.Errorf("Expected thread ID 42 in error, got %d", notFound.ThreadID)
	}
}

func TestParseFixturePage(t *testing.T) {
	page, err := fixtures.LoadFixture("thread_page.html")
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}

	p := parser.NewRegexExtractor(time.UTC)

	count, err := p.ParseCommentCount(9020254, page)
	if err != nil {
		t.Fatalf("Failed to parse comment count: %v", err)
	}
	fragments := p.SplitFragments(page)
	if len(fragments) != count {
		t.Fatalf("Expected %d fragments, got %d", count, len(fragments))
	}

	var prev int64
	for i := len(fragments) - 1; i >= 0; i-- {
		c, err := p.ParseFragment(fragments[i])
		if err != nil {
			t.Fatalf("Failed to parse fragment %d: %v", i, err)
		}
		if c.ID <= prev {
			t.Errorf("Expected ascending IDs oldest first, got %d after %d", c.ID, prev)
		}
		prev = c.ID
	}
}
