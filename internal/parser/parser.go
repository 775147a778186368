// internal/parser/parser.go
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"forum-ingestion/internal/models"
)

// DateTimeLayout is the format of the bookmark anchor title, e.g.
// "2000.07.13 21:01:59". It carries no zone.
const DateTimeLayout = "2006.01.02 15:04:05"

var (
	fragmentPattern = regexp.MustCompile(`(?s)<!-- hozzaszolas start -->(.*?)<!-- hozzaszolas\s+end -->`)

	// One comment looks like:
	//
	//	<table class="art"><tr class="art_h"><td class="art_h_l ...">
	//	  <a name="16970866"></a>
	//	  <a href="/User/UserDescription?u=75950" class="art_owner" title="..."><strong>Asszem</strong></a>
	//	  <span> ... <a href="/Article/viewArticle?a=16970866&amp;t=9020254" target="_blank" rel="bookmark" title="2000.07.13 21:01:59">2000.07.13</a></span>
	//	</td> ... </tr>
	//	<tr class="art_b"><td colspan="3"><div class="art_t">body</div></td></tr>
	//	</table>
	commentPattern = regexp.MustCompile(`(?s)<a name="(?P<commentId>\d+)".*?\?u=(?P<senderId>\d+).*?<strong>(?P<senderName>.*?)</strong>.*?bookmark" title="(?P<dateTime>[^"]+)".*?<div class="art_t">(?P<bodyHtml>.*)</div></td></tr>`)

	commentCountPattern = regexp.MustCompile(`Hozzászólások: (\d+)`)
)

var (
	commentIDGroup  = commentPattern.SubexpIndex("commentId")
	senderIDGroup   = commentPattern.SubexpIndex("senderId")
	senderNameGroup = commentPattern.SubexpIndex("senderName")
	dateTimeGroup   = commentPattern.SubexpIndex("dateTime")
	bodyHTMLGroup   = commentPattern.SubexpIndex("bodyHtml")
)

// RegexExtractor matches the forum's comment markup with a single pattern.
// Body markup is returned byte for byte.
type RegexExtractor struct {
	location *time.Location
}

// NewRegexExtractor parses comment timestamps in loc; nil means time.Local.
func NewRegexExtractor(loc *time.Location) *RegexExtractor {
	if loc == nil {
		loc = time.Local
	}
	return &RegexExtractor{location: loc}
}

// SplitFragments returns the text between each pair of comment markers in
// document order, which is newest first on the forum.
func (p *RegexExtractor) SplitFragments(page string) []string {
	matches := fragmentPattern.FindAllStringSubmatch(page, -1)
	fragments := make([]string, 0, len(matches))
	for _, m := range matches {
		fragments = append(fragments, m[1])
	}
	return fragments
}

func (p *RegexExtractor) ParseFragment(fragment string) (models.Comment, error) {
	m := commentPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Comment{}, &MalformedFragmentError{Fragment: fragment, Reason: "markup does not match"}
	}

	commentID, err := parseID(m[commentIDGroup])
	if err != nil {
		return models.Comment{}, &MalformedFragmentError{Fragment: fragment, Reason: "comment id: " + err.Error()}
	}
	senderID, err := parseID(m[senderIDGroup])
	if err != nil {
		return models.Comment{}, &MalformedFragmentError{Fragment: fragment, Reason: "sender id: " + err.Error()}
	}
	postedAt, err := parseDateTime(m[dateTimeGroup], p.location)
	if err != nil {
		return models.Comment{}, &MalformedFragmentError{Fragment: fragment, Reason: err.Error()}
	}

	return models.Comment{
		ID:         commentID,
		SenderName: m[senderNameGroup],
		SenderID:   senderID,
		PostedAt:   postedAt,
		BodyHTML:   m[bodyHTMLGroup],
	}, nil
}

// ParseCommentCount reads the thread's declared comment total.
func (p *RegexExtractor) ParseCommentCount(threadID int64, page string) (int, error) {
	m := commentCountPattern.FindStringSubmatch(page)
	if m == nil {
		return 0, &CommentCountNotFoundError{ThreadID: threadID}
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid comment count %q for thread %d: %w", m[1], threadID, err)
	}
	return count, nil
}

func parseID(digits string) (int64, error) {
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%d is not positive", id)
	}
	return id, nil
}

func parseDateTime(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", value, err)
	}
	return t, nil
}
