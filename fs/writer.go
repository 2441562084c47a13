package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/searchdata"
)

// Writer exports an index as a search directory: a searchdata.js manifest
// with a single "all" section and one data file per first letter.
//
// Files are written to baseDir/name.tmp and moved to baseDir/name once all
// of them are on disk, so readers never see a partial directory.
type Writer struct {
	baseDir string
	name    string
}

// NewWriter creates a Writer for the directory baseDir/name.
func NewWriter(baseDir, name string) *Writer {
	return &Writer{
		baseDir: baseDir,
		name:    name,
	}
}

func (w *Writer) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

// Dir returns the path of the exported directory.
func (w *Writer) Dir() string {
	return filepath.Join(w.baseDir, w.name)
}

// WriteIndex replaces the directory with the contents of idx and returns the
// manifest it wrote.
func (w *Writer) WriteIndex(ctx context.Context, idx *symdex.Index) (*symdex.Manifest, error) {
	letters, groups := searchdata.Partition(idx.Entries())
	section := symdex.Section{
		ID:      0,
		Name:    symdex.SectionAll,
		Label:   "All",
		Letters: letters,
	}
	manifest := &symdex.Manifest{Sections: []symdex.Section{section}}

	if err := os.RemoveAll(w.tempDir()); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return nil, err
	}

	if err := w.writeFiles(ctx, manifest, section.Files(), groups); err != nil {
		_ = w.abort()
		return nil, err
	}
	if err := w.commit(); err != nil {
		_ = w.abort()
		return nil, err
	}
	return manifest, nil
}

func (w *Writer) writeFiles(ctx context.Context, m *symdex.Manifest, names []string, groups [][]*symdex.Entry) error {
	var buf bytes.Buffer
	if err := searchdata.EncodeManifest(&buf, m); err != nil {
		return err
	}
	if err := w.writeFile(searchdata.ManifestFile, buf.Bytes()); err != nil {
		return err
	}

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf.Reset()
		if err := searchdata.Encode(&buf, groups[i]); err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := w.writeFile(name, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(w.tempDir(), name), data, 0644)
}

func (w *Writer) commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(w.Dir()); err != nil {
		return err
	}
	return os.Rename(w.tempDir(), w.Dir())
}

func (w *Writer) abort() error {
	return os.RemoveAll(w.tempDir())
}
