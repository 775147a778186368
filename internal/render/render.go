// Package render turns a crawled thread into a standalone document.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"forum-ingestion/internal/models"

	"github.com/valyala/fasttemplate"
)

const pageTemplate = `<html lang="hu">
  <head>
    <meta charset="utf-8">
    <title>Index.hu forum topic {{thread_id}}</title>
    <link rel="stylesheet" href="style.css">
  </head>
  <body>
    <h1>Topic #{{thread_id}}</h1>
    <h2>Comments:</h2>
    <div class="comments">
{{comments}}    </div>
  </body>
</html>
`

// Sender name and body are inserted as they appear on the forum; both are
// already markup.
const commentTemplate = `      <div class="comment" id="c{{id}}">
        <div class="header">#{{id}} – Sender: {{sender_name}} (#{{sender_id}}) @ {{posted_at}}</div>
        <div class="body">
{{body}}
        </div>
      </div>
`

type Renderer struct {
	page    *fasttemplate.Template
	comment *fasttemplate.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		page:    fasttemplate.New(pageTemplate, "{{", "}}"),
		comment: fasttemplate.New(commentTemplate, "{{", "}}"),
	}
}

// Render produces the HTML document for comments, in the order given.
func (r *Renderer) Render(threadID int64, comments []models.Comment) (string, error) {
	var list strings.Builder
	for _, c := range comments {
		_, err := r.comment.ExecuteFunc(&list, func(w io.Writer, tag string) (int, error) {
			switch tag {
			case "id":
				return io.WriteString(w, strconv.FormatInt(c.ID, 10))
			case "sender_name":
				return io.WriteString(w, c.SenderName)
			case "sender_id":
				return io.WriteString(w, strconv.FormatInt(c.SenderID, 10))
			case "posted_at":
				return io.WriteString(w, c.PostedAt.Format(time.RFC3339))
			case "body":
				return io.WriteString(w, c.BodyHTML)
			}
			return 0, fmt.Errorf("unknown tag %q", tag)
		})
		if err != nil {
			return "", fmt.Errorf("rendering comment %d: %w", c.ID, err)
		}
	}

	return r.page.ExecuteString(map[string]interface{}{
		"thread_id": strconv.FormatInt(threadID, 10),
		"comments":  list.String(),
	}), nil
}

// RenderJSON encodes the whole thread, metadata included.
func RenderJSON(thread models.Thread) ([]byte, error) {
	data, err := json.MarshalIndent(thread, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding thread %d: %w", thread.ID, err)
	}
	return append(data, '\n'), nil
}
