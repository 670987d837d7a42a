// Package loader reads Bazel profiles from disk.
//
// Bazel writes profiles either as plain JSON or gzip-compressed
// (command.profile.gz). The format is detected from the content, not the file
// name.
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/roach88/buildlens/internal/tef"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Load reads and decodes the profile at path. A path of "-" reads stdin.
func Load(path string) (tef.Trace, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return tef.Trace{}, fmt.Errorf("open profile: %w", err)
		}
		defer f.Close()
		r = f
	}

	tr, err := Read(r)
	if err != nil {
		return tef.Trace{}, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("profile loaded", "path", path, "events", len(tr.Events))
	return tr, nil
}

// Read decodes a profile from r, decompressing gzip input transparently.
func Read(r io.Reader) (tef.Trace, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return tef.Trace{}, fmt.Errorf("read profile: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return tef.Trace{}, fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	return tef.Decode(src)
}
