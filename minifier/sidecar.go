package minifier

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/andybalholm/brotli"
	"github.com/go-sourcemap/sourcemap"
	"github.com/klauspost/compress/gzip"

	"github.com/dreampie/jsminify/lib/fsext"
)

var sidecarExtensions = map[string]string{ //nolint:gochecknoglobals
	CompressGzip:   ".gz",
	CompressBrotli: ".br",
}

// compress writes the precompressed copies of data next to dest and returns
// their paths.
func compress(fs fsext.Fs, dest string, data []byte, formats []string) ([]string, error) {
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		var buf bytes.Buffer
		if err := encode(&buf, format, data); err != nil {
			return written, fmt.Errorf("couldn't %s compress %s: %w", format, dest, err)
		}
		path := dest + sidecarExtensions[format]
		if err := fsext.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
			return written, &IOError{Op: "write", Path: path, Err: err}
		}
		written = append(written, path)
	}
	return written, nil
}

func encode(w io.Writer, format string, data []byte) error {
	var wc io.WriteCloser
	switch format {
	case CompressGzip:
		gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return err
		}
		wc = gw
	case CompressBrotli:
		wc = brotli.NewWriterLevel(w, brotli.BestCompression)
	default:
		return fmt.Errorf("unknown compression %q", format)
	}
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

// sourceMapComment validates the source map of dest and returns the comment
// linking dest to its ".map" sibling.
func sourceMapComment(dest string, data []byte) (string, error) {
	name := filepath.Base(dest) + ".map"
	if _, err := sourcemap.Parse(name, data); err != nil {
		return "", fmt.Errorf("the source map for %s is invalid: %w", dest, err)
	}
	return "//# sourceMappingURL=" + name + "\n", nil
}
