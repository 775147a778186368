// internal/parser/dom.go
package parser

import (
	"net/url"
	"strings"
	"time"

	"forum-ingestion/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// DOMExtractor reads comment fields from a parsed HTML tree instead of a
// regular expression. It tolerates attribute reordering and whitespace
// changes, but BodyHTML is re-serialized by the HTML parser and so is not
// byte-identical to the source.
type DOMExtractor struct {
	RegexExtractor
}

func NewDOMExtractor(loc *time.Location) *DOMExtractor {
	return &DOMExtractor{RegexExtractor: *NewRegexExtractor(loc)}
}

func (p *DOMExtractor) ParseFragment(fragment string) (models.Comment, error) {
	malformed := func(reason string) (models.Comment, error) {
		return models.Comment{}, &MalformedFragmentError{Fragment: fragment, Reason: reason}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return malformed("html: " + err.Error())
	}

	name, ok := doc.Find("a[name]").First().Attr("name")
	if !ok {
		return malformed("missing comment anchor")
	}
	commentID, err := parseID(name)
	if err != nil {
		return malformed("comment id: " + err.Error())
	}

	owner := doc.Find(`a[href*="?u="]`).First()
	href, _ := owner.Attr("href")
	profile, err := url.Parse(href)
	if err != nil || href == "" {
		return malformed("missing profile link")
	}
	senderID, err := parseID(profile.Query().Get("u"))
	if err != nil {
		return malformed("sender id: " + err.Error())
	}

	strong := owner.Find("strong").First()
	if strong.Length() == 0 {
		strong = doc.Find("strong").First()
	}
	if strong.Length() == 0 {
		return malformed("missing sender name")
	}
	senderName, err := strong.Html()
	if err != nil {
		return malformed("sender name: " + err.Error())
	}

	title, ok := doc.Find(`a[rel="bookmark"]`).First().Attr("title")
	if !ok {
		return malformed("missing bookmark anchor")
	}
	postedAt, err := parseDateTime(title, p.location)
	if err != nil {
		return malformed(err.Error())
	}

	body := doc.Find("div.art_t").First()
	if body.Length() == 0 {
		return malformed("missing body container")
	}
	bodyHTML, err := body.Html()
	if err != nil {
		return malformed("body: " + err.Error())
	}

	return models.Comment{
		ID:         commentID,
		SenderName: senderName,
		SenderID:   senderID,
		PostedAt:   postedAt,
		BodyHTML:   bodyHTML,
	}, nil
}
