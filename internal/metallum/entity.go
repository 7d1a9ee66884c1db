package metallum

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// serverUTCOffset converts the site's server time to UTC.
const serverUTCOffset = 4 * time.Hour

var trailingDigits = regexp.MustCompile(`\d+$`)

// idFromHref extracts the trailing numeric id from an entity link, e.g.
// ".../bands/Metallica/125" yields "125".
func idFromHref(href string) string {
	return trailingDigits.FindString(href)
}

// ddForLabel finds the <dd> element paired with the given <dt> label.
// Entity pages store their facts in <dt>/<dd> lists; the nth label pairs
// with the nth value. Returns nil when the label is absent.
func ddForLabel(doc *goquery.Document, label string) *goquery.Selection {
	index := -1
	doc.Find("dt").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == label {
			index = i
			return false
		}
		return true
	})
	if index < 0 {
		return nil
	}
	return doc.Find("dd").Eq(index)
}

// ddTextForLabel returns the trimmed text paired with a <dt> label, or ""
// when the label is absent from the page.
func ddTextForLabel(doc *goquery.Document, label string) string {
	dd := ddForLabel(doc, label)
	if dd == nil {
		return ""
	}
	return strings.TrimSpace(dd.Text())
}

// auditTimes extracts the "Added on" / "Last modified on" timestamps from a
// page's #auditTrail table and shifts them from server time to UTC. Either
// value is nil when the cell holds no parsable timestamp (e.g. "N/A").
func auditTimes(doc *goquery.Document) (added, modified *time.Time) {
	row := doc.Find("#auditTrail").Find("tr").Eq(1)
	added = auditTime(row.Find("td").Eq(0).Text(), "Added on: ")
	modified = auditTime(row.Find("td").Eq(1).Text(), "Last modified on: ")
	return added, modified
}

func auditTime(text, prefix string) *time.Time {
	s := strings.TrimPrefix(strings.TrimSpace(text), prefix)
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		return nil
	}
	t = t.Add(serverUTCOffset)
	return &t
}

// imageHref returns the href of an image anchor with any query string
// stripped, or "" when the selector matches nothing.
func imageHref(doc *goquery.Document, selector string) string {
	href, ok := doc.Find(selector).Attr("href")
	if !ok {
		return ""
	}
	return strings.SplitN(href, "?", 2)[0]
}

// collapseSpace trims a string and collapses internal whitespace runs,
// including newlines and tabs, to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
