// Package assets stores uploaded profile pictures and hands back an opaque
// reference: a bare filename for local disk, an object URL for S3.
package assets

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrInvalidName = errors.New("assets: invalid name")

// Store persists a named blob and returns the reference to record.
type Store interface {
	Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error)

	// Delete removes the blob behind a reference returned by Put. Deleting
	// a blob that is already gone succeeds.
	Delete(ctx context.Context, ref string) error
}

// Pinger is implemented by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename reduces an uploaded filename to a safe, flat ASCII name:
// directory parts are dropped, runs of other characters collapse to "_" and
// leading dots or underscores are stripped. It may return "".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" || name == "." {
		return ""
	}
	return name
}

// ContentType guesses an image MIME type from the filename extension.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
