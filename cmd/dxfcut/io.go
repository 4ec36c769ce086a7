package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/viant/afs"
)

// readInput loads the whole input: an afs-backed URL when path is
// non-empty, stdin otherwise (spec.md §6's default stdin/stdout rule).
func readInput(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	fs := afs.New()
	return fs.DownloadWithURL(ctx, path)
}

// writeOutput writes data to an afs-backed URL when path is non-empty,
// stdout otherwise (spec.md §6's "--output overrides output" rule).
func writeOutput(ctx context.Context, path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	fs := afs.New()
	return fs.Upload(ctx, path, 0644, bytes.NewReader(data))
}
