package fandom

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
	"github.com/fanlore-dev/fanlore/pkg/utils/safe"
)

// Extract7z unpacks a 7z archive into destDir and returns the path of the
// first XML file it contains. Fandom dump archives hold a single XML dump.
func Extract7z(ctx context.Context, archivePath, destDir string) (string, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open 7z archive", goerr.V("path", archivePath))
	}
	defer safe.Close(ctx, r)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create extraction directory", goerr.V("dir", destDir))
	}

	var xmlPath string
	for _, file := range r.File {
		if file.FileInfo().IsDir() {
			continue
		}

		// Keep extraction inside destDir even for hostile archive entries
		name := filepath.Clean(file.Name)
		if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
			return "", goerr.New("archive entry escapes extraction directory",
				goerr.V("entry", file.Name))
		}
		outPath := filepath.Join(destDir, name)

		if err := extractEntry(ctx, file, outPath); err != nil {
			return "", err
		}
		logging.From(ctx).Debug("extracted archive entry", "entry", file.Name, "path", outPath)

		if xmlPath == "" && strings.EqualFold(filepath.Ext(name), ".xml") {
			xmlPath = outPath
		}
	}

	if xmlPath == "" {
		return "", goerr.Wrap(ErrNoXMLInArchive, "archive has no XML entry", goerr.V("path", archivePath))
	}

	logging.From(ctx).Info("extracted archive", "archive", archivePath, "xml", xmlPath)
	return xmlPath, nil
}

func extractEntry(ctx context.Context, file *sevenzip.File, outPath string) error {
	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open archive entry", goerr.V("entry", file.Name))
	}
	defer safe.Close(ctx, rc)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create entry directory", goerr.V("path", outPath))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return goerr.Wrap(err, "failed to create extracted file", goerr.V("path", outPath))
	}

	if _, err := io.Copy(f, rc); err != nil {
		safe.Close(ctx, f)
		safe.Remove(ctx, outPath)
		return goerr.Wrap(err, "failed to write extracted file", goerr.V("path", outPath))
	}
	if err := f.Close(); err != nil {
		safe.Remove(ctx, outPath)
		return goerr.Wrap(err, "failed to finalize extracted file", goerr.V("path", outPath))
	}
	return nil
}
