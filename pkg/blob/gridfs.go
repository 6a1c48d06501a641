package blob

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// refPrefix is the path under which stored files are served back.
const refPrefix = "/files/"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_.]`)

// GridFSStore implements Store on top of a MongoDB GridFS bucket.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore creates a GridFS-backed blob store on the given database.
func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("failed to open GridFS bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Upload stores the content under a sanitized, uniquified filename and
// returns the /files/<id> ref.
func (s *GridFSStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := unsafeChars.ReplaceAllString(strings.ToLower(filename), "_")
	name = uuid.NewString() + "_" + name

	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	id, err := s.bucket.UploadFromStream(name, io.LimitReader(r, MaxUploadSize), opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return refPrefix + id.Hex(), nil
}

// Open returns a reader over the stored file for a ref together with the
// content type recorded at upload time.
func (s *GridFSStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	id, err := parseRef(ref)
	if err != nil {
		return nil, "", err
	}
	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, lookupErr := file.Metadata.LookupErr("contentType"); lookupErr == nil {
			if ct, ok := v.StringValueOK(); ok && ct != "" {
				contentType = ct
			}
		}
	}
	return stream, contentType, nil
}

// Delete removes the stored file for a ref.
func (s *GridFSStore) Delete(ctx context.Context, ref string) error {
	id, err := parseRef(ref)
	if err != nil {
		return err
	}
	if err := s.bucket.Delete(id); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func parseRef(ref string) (primitive.ObjectID, error) {
	hex := strings.TrimPrefix(ref, refPrefix)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid file ref %q", ref)
	}
	return id, nil
}
