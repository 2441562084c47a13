package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/symdex"
)

// Ensure MemberExtractor implements symdex.MemberExtractor at compile time.
var _ symdex.MemberExtractor = (*MemberExtractor)(nil)

// MemberExtractor cuts one member's documentation out of a Doxygen page.
//
// A member is introduced by an empty anchor element carrying its id,
// followed by an h2.memtitle heading (Doxygen 1.8.10 and later) and a
// div.memitem block holding the prototype and description.
type MemberExtractor struct{}

// NewMemberExtractor creates a new MemberExtractor.
func NewMemberExtractor() *MemberExtractor {
	return &MemberExtractor{}
}

// Extract returns the block identified by anchor. An empty anchor selects
// the page's main contents, which is what references to whole classes
// point at.
func (e *MemberExtractor) Extract(html string, anchor string) (*symdex.Member, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, symdex.Errorf(symdex.EINVALID, "failed to parse HTML: %v", err)
	}

	if anchor == "" {
		return e.page(doc)
	}

	target := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == anchor
	}).First()
	if target.Length() == 0 {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "anchor %q not found", anchor)
	}

	// The anchor is usually an empty <a> before the block; newer
	// versions may put the id on the memitem itself.
	item := target
	if !item.Is("div.memitem") {
		item = target.NextAllFiltered("div.memitem").First()
	}
	if item.Length() == 0 {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "anchor %q has no member documentation", anchor)
	}

	title := strings.TrimSpace(memberTitle(item))
	content, err := goquery.OuterHtml(item)
	if err != nil {
		return nil, symdex.Errorf(symdex.EINTERNAL, "render member %q: %v", anchor, err)
	}

	return &symdex.Member{
		Anchor:      anchor,
		Title:       title,
		ContentHTML: content,
	}, nil
}

// memberTitle prefers the memtitle heading and falls back to the
// prototype's name cell used by older versions.
func memberTitle(item *goquery.Selection) string {
	if h := item.PrevAllFiltered("h2.memtitle").First(); h.Length() > 0 {
		// Drop the permalink glyph.
		h = h.Clone()
		h.Find(".permalink").Remove()
		return h.Text()
	}
	return item.Find("td.memname").First().Text()
}

func (e *MemberExtractor) page(doc *goquery.Document) (*symdex.Member, error) {
	contents := doc.Find("div.contents").First()
	if contents.Length() == 0 {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "page has no contents")
	}
	content, err := goquery.OuterHtml(contents)
	if err != nil {
		return nil, symdex.Errorf(symdex.EINTERNAL, "render page contents: %v", err)
	}
	return &symdex.Member{
		Title:       strings.TrimSpace(doc.Find("div.headertitle .title").First().Text()),
		ContentHTML: content,
	}, nil
}
