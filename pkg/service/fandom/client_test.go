package fandom_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/service/fandom"
)

func TestStatisticsPageURL(t *testing.T) {
	cases := []struct {
		name    string
		wikiURL string
		want    string
		wantErr bool
	}{
		{
			name:    "wiki page URL",
			wikiURL: "https://asimov.fandom.com/wiki/Asimov_Wiki",
			want:    "https://asimov.fandom.com/wiki/Special:Statistics",
		},
		{
			name:    "bare host",
			wikiURL: "https://asimov.fandom.com/",
			want:    "https://asimov.fandom.com/wiki/Special:Statistics",
		},
		{
			name:    "relative URL",
			wikiURL: "asimov.fandom.com",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fandom.StatisticsPageURL(tc.wikiURL)
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.V(t, got).Equal(tc.want)
		})
	}
}

const statisticsHTML = `<html><body>
<form action="/wiki/Special:Statistics">
  <div id="other">Something else <a href="https://example.com/other.7z">link</a></div>
  <div id="dumpCurrent">Current pages: <a href="https://s3.example.com/asimov_pages_current.xml.7z">download</a></div>
</form>
</body></html>`

func TestDumpURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Path).Equal("/wiki/Special:Statistics")
		_, _ = w.Write([]byte(statisticsHTML))
	}))
	defer srv.Close()

	client := fandom.NewClient(fandom.WithHTTPClient(srv.Client()))
	dumpURL, err := client.DumpURL(context.Background(), srv.URL+"/wiki/Asimov_Wiki")
	gt.NoError(t, err).Required()
	gt.V(t, dumpURL).Equal("https://s3.example.com/asimov_pages_current.xml.7z")
}

func TestDumpURLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>no form here</p></body></html>"))
	}))
	defer srv.Close()

	client := fandom.NewClient(fandom.WithHTTPClient(srv.Client()))
	_, err := client.DumpURL(context.Background(), srv.URL)
	gt.B(t, errors.Is(err, fandom.ErrDumpLinkNotFound)).True()
}

func TestDownload(t *testing.T) {
	payload := []byte("dump archive bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "dumps", "asimov.7z")
	client := fandom.NewClient(fandom.WithHTTPClient(srv.Client()))
	gt.NoError(t, client.Download(context.Background(), srv.URL, dest)).Required()

	got, err := os.ReadFile(dest)
	gt.NoError(t, err)
	gt.V(t, string(got)).Equal(string(payload))
}

func TestDownloadRemovesPartialFileOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "asimov.7z")
	client := fandom.NewClient(fandom.WithHTTPClient(srv.Client()))
	gt.Error(t, client.Download(context.Background(), srv.URL, dest))

	_, err := os.Stat(dest)
	gt.B(t, os.IsNotExist(err)).True()
}
