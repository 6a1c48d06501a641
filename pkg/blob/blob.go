package blob

import (
	"context"
	"io"
)

// MaxUploadSize caps accepted image uploads at 5MB.
const MaxUploadSize = 5 * 1024 * 1024

// Store persists image bytes outside the relational database. The relational
// rows only ever hold the opaque ref string returned by Upload.
type Store interface {
	// Upload stores the content and returns a ref usable as an image URL path.
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	// Open returns a reader over the stored content for a ref, along with
	// the content type recorded at upload.
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	// Delete removes the stored content for a ref.
	Delete(ctx context.Context, ref string) error
}
