package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/usecase"
)

const testDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/">
  <siteinfo>
    <sitename>Middle-earth Wiki</sitename>
  </siteinfo>
  <page>
    <title>Gandalf</title>
    <ns>0</ns>
    <id>1</id>
    <revision>
      <id>10</id>
      <timestamp>2024-01-01T00:00:00Z</timestamp>
      <contributor><username>editor</username></contributor>
      <text>Gandalf is a wizard. He visited [[Hobbiton]]. [[Category:Characters]]</text>
    </revision>
  </page>
  <page>
    <title>Hobbiton</title>
    <ns>0</ns>
    <id>2</id>
    <revision>
      <id>11</id>
      <timestamp>2024-01-01T00:00:00Z</timestamp>
      <contributor><username>editor</username></contributor>
      <text>Hobbiton is a village where [[Gandalf]] arrived. [[Category:Places]]</text>
    </revision>
  </page>
</mediawiki>`

func TestBuildFromFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	dumpPath := filepath.Join(dir, "dump.xml")
	gt.NoError(t, os.WriteFile(dumpPath, []byte(testDump), 0644)).Required()

	outputPath := filepath.Join(dir, "graph", "middle_earth.json.gz")
	uc := usecase.NewBuildUseCase()

	result, err := uc.BuildFromFile(ctx, dumpPath, outputPath)
	gt.NoError(t, err).Required()
	gt.V(t, result.Pages).Equal(2)
	gt.V(t, result.Entities).Equal(2)
	gt.V(t, result.Relationships).Equal(2)
	gt.V(t, result.OutputPath).Equal(outputPath)

	loaded, err := kb.Load(ctx, outputPath)
	gt.NoError(t, err).Required()
	gt.V(t, loaded.NumberOfNodes()).Equal(2)
	gt.V(t, loaded.NumberOfEdges()).Equal(2)

	gandalf, err := loaded.GetEntityByName("Gandalf")
	gt.NoError(t, err).Required()
	hobbiton, err := loaded.GetEntityByName("Hobbiton")
	gt.NoError(t, err).Required()

	_, err = loaded.GetAllEdgesBetween(gandalf.Core().ID, hobbiton.Core().ID)
	gt.NoError(t, err)
	_, err = loaded.GetAllEdgesBetween(hobbiton.Core().ID, gandalf.Core().ID)
	gt.NoError(t, err)
}

func TestBuildFromFileMissingDump(t *testing.T) {
	uc := usecase.NewBuildUseCase()
	_, err := uc.BuildFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.xml"), "out.json")
	gt.Error(t, err)
}

func TestArchiveFileName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{url: "https://s3.example.com/dumps/asimov_pages_current.xml.7z", want: "asimov_pages_current.xml.7z"},
		{url: "https://s3.example.com/dumps/asimov.7z?signature=abc", want: "asimov.7z"},
		{url: "https://s3.example.com/", want: "dump.7z"},
	}
	for _, tc := range cases {
		gt.V(t, usecase.ArchiveFileName(tc.url)).Equal(tc.want)
	}
}
