package fandom

import "time"

// SiteContent is the parsed form of a MediaWiki XML dump: the wiki metadata
// plus every page record that survived validation.
type SiteContent struct {
	SiteInfo *SiteInfo
	Pages    []*Page
}

// SiteInfo carries the wiki-level metadata from the dump header
type SiteInfo struct {
	SiteName   string
	DBName     string
	Base       string
	Generator  string
	Case       string
	Namespaces map[int]string
}

// Page is a single wiki page with its revision history. Title, Namespace
// and ID are required by the parser; a record missing any of them is
// dropped.
type Page struct {
	Title         string
	Namespace     int
	ID            int
	RedirectTitle string
	Restrictions  []string
	Revisions     []*Revision
}

// LatestRevision returns the last revision of the page, or nil when the
// page has none. Dumps of current pages carry exactly one revision per
// page, full-history dumps list them in chronological order.
func (p *Page) LatestRevision() *Revision {
	if len(p.Revisions) == 0 {
		return nil
	}
	return p.Revisions[len(p.Revisions)-1]
}

// Revision is a single edit of a page. ID, Timestamp, Contributor and Text
// are required; a revision missing any of them is dropped with a warning.
type Revision struct {
	ID          int
	ParentID    *int
	Timestamp   time.Time
	Contributor *Contributor
	Minor       bool
	Comment     string
	Model       string
	Format      string
	Text        *Text
	SHA1        string
}

// Contributor identifies who made a revision. Registered users carry
// Username and ID, anonymous edits carry only IP.
type Contributor struct {
	Username string
	ID       *int
	IP       string
}

// Text holds the wikitext body of a revision plus the attributes of the
// text element. Deleted marks revisions whose content was suppressed.
type Text struct {
	Content string
	Bytes   *int
	SHA1    string
	Deleted bool
}
