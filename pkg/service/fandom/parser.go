package fandom

import (
	"context"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
	"github.com/fanlore-dev/fanlore/pkg/utils/safe"
)

// Parse reads a MediaWiki XML dump as a token stream and assembles the
// site content. Memory stays bounded by the largest single page, not the
// dump size.
//
// Records missing required fields are dropped with a warning instead of
// failing the whole parse. A malformed XML stream is a hard error.
func Parse(ctx context.Context, r io.Reader) (*SiteContent, error) {
	logger := logging.From(ctx)

	content := &SiteContent{}
	dec := xml.NewDecoder(r)

	var (
		path        []string
		text        strings.Builder
		page        *pageBuilder
		revision    *revisionBuilder
		contributor *Contributor
		textElem    *Text
		namespaces  map[int]string
		nsKey       string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read XML token")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			tag := t.Name.Local
			path = append(path, tag)
			text.Reset()

			switch {
			case tag == "page":
				page = &pageBuilder{}
			case tag == "revision":
				revision = &revisionBuilder{}
			case tag == "contributor" && inPath(path, "revision"):
				contributor = &Contributor{}
			case tag == "text" && inPath(path, "revision"):
				textElem = &Text{
					Deleted: attr(t, "deleted") == "deleted",
				}
				if b := attr(t, "bytes"); b != "" {
					if n, err := strconv.Atoi(b); err == nil {
						textElem.Bytes = &n
					}
				}
				textElem.SHA1 = attr(t, "sha1")
			case tag == "siteinfo" && content.SiteInfo == nil:
				content.SiteInfo = &SiteInfo{}
			case tag == "namespaces" && inPath(path, "siteinfo"):
				namespaces = map[int]string{}
			case tag == "namespace" && inPath(path, "namespaces"):
				nsKey = attr(t, "key")
			case tag == "redirect" && page != nil:
				page.redirectTitle = attr(t, "title")
			}

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			tag := t.Name.Local
			path = path[:len(path)-1]
			value := text.String()
			text.Reset()

			switch {
			// Site metadata
			case content.SiteInfo != nil && inPath(path, "siteinfo"):
				switch tag {
				case "sitename":
					content.SiteInfo.SiteName = value
				case "dbname":
					content.SiteInfo.DBName = value
				case "base":
					content.SiteInfo.Base = value
				case "generator":
					content.SiteInfo.Generator = value
				case "case":
					content.SiteInfo.Case = value
				case "namespace":
					// The main namespace has no name and is not indexed
					if namespaces != nil && value != "" {
						if key, err := strconv.Atoi(nsKey); err == nil {
							namespaces[key] = value
						} else {
							logger.Warn("failed to parse namespace key", "key", nsKey)
						}
					}
				case "namespaces":
					content.SiteInfo.Namespaces = namespaces
					namespaces = nil
				}

			// Contributor fields come before revision fields so the shared
			// <id> tag resolves to the innermost element.
			case contributor != nil && inPath(path, "contributor"):
				switch tag {
				case "username":
					contributor.Username = value
				case "id":
					if n, ok := parseOptionalInt(value); ok {
						contributor.ID = &n
					}
				case "ip":
					contributor.IP = value
				}

			case tag == "contributor" && revision != nil && contributor != nil:
				revision.contributor = contributor
				contributor = nil

			case tag == "text" && revision != nil && textElem != nil:
				textElem.Content = value
				revision.text = textElem
				textElem = nil

			case revision != nil && inPath(path, "revision"):
				switch tag {
				case "id":
					if n, ok := parseOptionalInt(value); ok {
						revision.id = &n
					}
				case "parentid":
					if n, ok := parseOptionalInt(value); ok {
						revision.parentID = &n
					}
				case "timestamp":
					ts, err := time.Parse(time.RFC3339, value)
					if err != nil {
						logger.Warn("failed to parse revision timestamp", "timestamp", value)
					} else {
						revision.timestamp = &ts
					}
				case "minor":
					revision.minor = true
				case "comment":
					revision.comment = value
				case "model":
					revision.model = value
				case "format":
					revision.format = value
				case "sha1":
					revision.sha1 = value
				}

			case tag == "revision" && page != nil && revision != nil:
				if rev, ok := revision.build(); ok {
					page.revisions = append(page.revisions, rev)
				} else {
					logger.Warn("dropping revision with missing required fields",
						"pageTitle", page.title)
				}
				revision = nil

			case page != nil && inPath(path, "page"):
				switch tag {
				case "title":
					page.title = value
					page.hasTitle = true
				case "ns":
					page.namespace = parseLenientInt(value)
					page.hasNS = true
				case "id":
					page.id = parseLenientInt(value)
					page.hasID = true
				case "restrictions":
					if value != "" {
						page.restrictions = append(page.restrictions, value)
					}
				}

			case tag == "page" && page != nil:
				if p, ok := page.build(); ok {
					content.Pages = append(content.Pages, p)
				} else {
					logger.Warn("dropping page with missing required fields", "pageTitle", page.title)
				}
				page = nil
			}
		}
	}

	logger.Info("parsed XML dump", "pages", len(content.Pages))
	return content, nil
}

// ParseFile parses a dump from a file on disk
func ParseFile(ctx context.Context, path string) (*SiteContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dump file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	content, err := Parse(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse dump file", goerr.V("path", path))
	}
	return content, nil
}

type pageBuilder struct {
	title         string
	namespace     int
	id            int
	redirectTitle string
	restrictions  []string
	revisions     []*Revision

	hasTitle bool
	hasNS    bool
	hasID    bool
}

func (b *pageBuilder) build() (*Page, bool) {
	if !b.hasTitle || !b.hasNS || !b.hasID || b.title == "" {
		return nil, false
	}
	return &Page{
		Title:         b.title,
		Namespace:     b.namespace,
		ID:            b.id,
		RedirectTitle: b.redirectTitle,
		Restrictions:  b.restrictions,
		Revisions:     b.revisions,
	}, true
}

type revisionBuilder struct {
	id          *int
	parentID    *int
	timestamp   *time.Time
	contributor *Contributor
	minor       bool
	comment     string
	model       string
	format      string
	sha1        string
	text        *Text
}

func (b *revisionBuilder) build() (*Revision, bool) {
	if b.id == nil || b.timestamp == nil || b.contributor == nil || b.text == nil {
		return nil, false
	}
	return &Revision{
		ID:          *b.id,
		ParentID:    b.parentID,
		Timestamp:   *b.timestamp,
		Contributor: b.contributor,
		Minor:       b.minor,
		Comment:     b.comment,
		Model:       b.model,
		Format:      b.format,
		Text:        b.text,
		SHA1:        b.sha1,
	}, true
}

func inPath(path []string, tag string) bool {
	for _, p := range path {
		if p == tag {
			return true
		}
	}
	return false
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// parseOptionalInt treats empty or unparsable values as absent
func parseOptionalInt(s string) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseLenientInt coerces empty or unparsable values to zero
func parseLenientInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
