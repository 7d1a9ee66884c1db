package metallum

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/azagthoth/metallum/internal/model"
)

// LyricsForID fetches the lyrics of a song by its numeric id. The endpoint
// returns an HTML fragment with break tags for line structure: a double break
// separates stanzas and single breaks end lines. Songs whose lyrics have not
// been entered yield a placeholder text, which is returned as-is.
func (c *Client) LyricsForID(ctx context.Context, id string) (model.Lyrics, error) {
	endpoint := fmt.Sprintf("release/ajax-view-lyrics/id/%s", id)
	doc, err := c.document(ctx, endpoint)
	if err != nil {
		return "", err
	}

	fragment, err := doc.Find("p").First().Html()
	if err != nil {
		return "", &ParseError{Endpoint: endpoint, Reason: err.Error()}
	}

	fragment = strings.ReplaceAll(fragment, "\r", "")
	fragment = strings.ReplaceAll(fragment, "&#13;", "")
	for _, br := range []string{"<br/><br/>", "<br><br>"} {
		fragment = strings.ReplaceAll(fragment, br, "\n")
	}
	for _, br := range []string{"<br/>", "<br>"} {
		fragment = strings.ReplaceAll(fragment, br, "")
	}

	return model.Lyrics(strings.TrimSpace(html.UnescapeString(fragment))), nil
}
