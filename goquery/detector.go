// Package goquery inspects Doxygen HTML pages with goquery: it recognizes
// generated sites and cuts single member blocks out of class pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/symdex"
)

// Ensure Detector implements symdex.SiteDetector at compile time.
var _ symdex.SiteDetector = (*Detector)(nil)

// Detector identifies Doxygen pages and locates their search directory.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// searchScripts are the scripts every page with search enabled loads from
// the search directory.
var searchScripts = []string{"searchdata.js", "search.js"}

// Detect analyzes HTML and returns what it learned about the site.
// The zero Site is returned for pages that were not generated by Doxygen.
func (d *Detector) Detect(html string, pageURL string) symdex.Site {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return symdex.Site{}
	}

	var site symdex.Site
	if version, ok := d.generatorVersion(doc); ok {
		site.Generator = symdex.GeneratorDoxygen
		site.Version = version
	} else if d.hasMarkers(doc) {
		site.Generator = symdex.GeneratorDoxygen
	} else {
		return symdex.Site{}
	}

	site.SearchURL = d.searchURL(doc, pageURL)
	return site
}

// generatorVersion reads <meta name="generator" content="Doxygen 1.9.1">.
func (d *Detector) generatorVersion(doc *goquery.Document) (string, bool) {
	var version string
	var found bool
	doc.Find("meta[name='generator']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content, _ := s.Attr("content")
		fields := strings.Fields(content)
		if len(fields) == 0 || !strings.EqualFold(fields[0], "doxygen") {
			return true
		}
		found = true
		if len(fields) > 1 {
			version = fields[1]
		}
		return false
	})
	return version, found
}

// hasMarkers checks for page structure only Doxygen emits, for pages whose
// generator tag was stripped.
func (d *Detector) hasMarkers(doc *goquery.Document) bool {
	return doc.Find("#MSearchBox").Length() > 0 ||
		doc.Find("#doc-content").Length() > 0 && doc.Find("div.headertitle").Length() > 0
}

// searchURL resolves the directory of the first search script against
// pageURL. Returns "" when the page has no search.
func (d *Detector) searchURL(doc *goquery.Document, pageURL string) string {
	var src string
	var found bool
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("src")
		path := v
		if i := strings.IndexAny(path, "?#"); i >= 0 {
			path = path[:i]
		}
		for _, name := range searchScripts {
			if path == name || strings.HasSuffix(path, "/"+name) {
				src = strings.TrimSuffix(path, name)
				found = true
				return false
			}
		}
		return true
	})
	if !found {
		return ""
	}
	if src == "" {
		src = "./"
	}

	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
