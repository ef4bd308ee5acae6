package fandom

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
	"github.com/fanlore-dev/fanlore/pkg/utils/safe"
)

const userAgent = "fanlore-dump-downloader/1.0"

// Client fetches dump archives from a Fandom wiki over HTTP
type Client struct {
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// NewClient creates a dump download client
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// StatisticsPageURL derives the Special:Statistics page URL from any URL of
// the wiki, e.g. "https://asimov.fandom.com/wiki/Asimov_Wiki".
func StatisticsPageURL(wikiURL string) (string, error) {
	u, err := url.Parse(wikiURL)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse wiki URL", goerr.V("url", wikiURL))
	}
	if u.Scheme == "" || u.Host == "" {
		return "", goerr.New("wiki URL must be absolute", goerr.V("url", wikiURL))
	}
	return u.Scheme + "://" + u.Host + "/wiki/Special:Statistics", nil
}

// DumpURL locates the "Current pages" database dump link on the wiki's
// Special:Statistics page.
func (c *Client) DumpURL(ctx context.Context, wikiURL string) (string, error) {
	statsURL, err := StatisticsPageURL(wikiURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statsURL, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build statistics page request", goerr.V("url", statsURL))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch statistics page", goerr.V("url", statsURL))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status from statistics page",
			goerr.V("url", statsURL), goerr.V("status", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse statistics page", goerr.V("url", statsURL))
	}

	var dumpURL string
	doc.Find(`form[action="/wiki/Special:Statistics"] div[id]`).EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if !strings.HasPrefix(strings.TrimSpace(div.Text()), "Current pages") {
			return true
		}
		if href, ok := div.Find("a").First().Attr("href"); ok {
			dumpURL = href
			return false
		}
		return true
	})

	if dumpURL == "" {
		return "", goerr.Wrap(ErrDumpLinkNotFound, "statistics page has no current pages dump link",
			goerr.V("url", statsURL))
	}

	logging.From(ctx).Info("found dump link", "wikiURL", wikiURL, "dumpURL", dumpURL)
	return dumpURL, nil
}

// Download streams the file at url to outputPath. A partially written file
// is removed on failure.
func (c *Client) Download(ctx context.Context, fileURL, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build download request", goerr.V("url", fileURL))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to download file", goerr.V("url", fileURL))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected status from download",
			goerr.V("url", fileURL), goerr.V("status", resp.StatusCode))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return goerr.Wrap(err, "failed to create output file", goerr.V("path", outputPath))
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		safe.Close(ctx, f)
		safe.Remove(ctx, outputPath)
		return goerr.Wrap(err, "failed to write downloaded file",
			goerr.V("url", fileURL), goerr.V("path", outputPath))
	}
	if err := f.Close(); err != nil {
		safe.Remove(ctx, outputPath)
		return goerr.Wrap(err, "failed to finalize downloaded file", goerr.V("path", outputPath))
	}

	logging.From(ctx).Info("downloaded file", "url", fileURL, "path", outputPath)
	return nil
}
