package object

import (
	"context"
	"fmt"
	"io"
	"strings"

	"resume-analyzer/internal/shared/util"
)

// Store writes opaque blobs under caller-chosen keys.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
}

// Key builds "<recordID>/<fileName>" after sanitizing both parts.
func Key(recordID, fileName string) (string, error) {
	id, err := util.SanitizeFileName(recordID)
	if err != nil {
		return "", fmt.Errorf("record id: %w", err)
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("file name: %w", err)
	}
	return strings.Join([]string{id, name}, "/"), nil
}
