package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// LoadFixture reads a file from the fixtures directory as UTF-8 text.
func LoadFixture(filename string) (string, error) {
	_, currentFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(currentFile)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Comment renders one comment the way the forum marks it up, without the
// surrounding hozzaszolas markers.
func Comment(id, senderID int64, senderName, dateTime, body string) string {
	return fmt.Sprintf(`
<table class="art">
<tr class="art_h">
<td class="art_h_l hasBadge specAge14">
<a name="%d"></a>
<a href="/User/UserDescription?u=%d" class="art_owner" title="Veterán"><strong>%s</strong></a>
<span> <a rel="license" href="https://forum.index.hu/felhasznalasiFeltetelek" target="license"><img alt="Creative Commons License" title="&copy; Index.hu Zrt." src="/img/licence_index.png" /></a> <a href="/Article/viewArticle?a=%d&amp;t=9020254" target="_blank" rel="bookmark" title="%s">%s</a></span>
</td>
<td class="art_h_m"></td>
<td class="art_h_r">
<a href="/EditArticle/ReplayEditArticle?a=%d&amp;t=9020254" rel="nofollow" class="art_cnt art_rpl" title="válasz" onclick="logReply(this)"></a>
<span class="art_nr">%d</span>
</td>
</tr>
<tr class="art_b"><td colspan="3"><div class="art_t">%s</div></td></tr>
</table>
`, id, senderID, senderName, id, dateTime, dateTime[:10], id, id, body)
}

// ThreadPage wraps comment fragments, given newest first, in a page that
// declares count comments.
func ThreadPage(count int, fragments ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Index Fórum</title></head><body>\n")
	fmt.Fprintf(&b, "<div class=\"topic_info\">Hozzászólások: %d</div>\n", count)
	for _, f := range fragments {
		b.WriteString("<!-- hozzaszolas start -->")
		b.WriteString(f)
		b.WriteString("<!-- hozzaszolas end -->\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}
