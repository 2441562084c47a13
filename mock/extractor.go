package mock

import "github.com/fwojciec/symdex"

var _ symdex.MemberExtractor = (*MemberExtractor)(nil)

// MemberExtractor is a mock implementation of symdex.MemberExtractor.
type MemberExtractor struct {
	ExtractFn func(html string, anchor string) (*symdex.Member, error)
}

func (e *MemberExtractor) Extract(html string, anchor string) (*symdex.Member, error) {
	return e.ExtractFn(html, anchor)
}

var _ symdex.SiteDetector = (*SiteDetector)(nil)

// SiteDetector is a mock implementation of symdex.SiteDetector.
type SiteDetector struct {
	DetectFn func(html string, pageURL string) symdex.Site
}

func (d *SiteDetector) Detect(html string, pageURL string) symdex.Site {
	return d.DetectFn(html, pageURL)
}
