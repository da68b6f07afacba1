package gcs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ProductImageRepositoryGCS stores product images in a GCS bucket.
// It implements usecase.ProductImageStore.
//
// Layout (single bucket):
// - bucket: straightenup-product-images
// - objectPath: products/{productId}/{objectId}_{fileName}
//
// Public access:
//   - The bucket is expected to grant "allUsers: Storage Object Viewer"
//     (uniform access), so uploaded objects are publicly readable without
//     per-object ACL changes.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

// Save writes the image bytes and returns the public URL of the object.
func (r *ProductImageRepositoryGCS) Save(ctx context.Context, productID, filename, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("productImage_repository_gcs: storage client is nil")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("productImage_repository_gcs: bucket is empty")
	}
	pid := sanitizePathSegment(productID)
	if pid == "" {
		return "", errors.New("productImage_repository_gcs: productID is empty")
	}
	if len(data) == 0 {
		return "", errors.New("productImage_repository_gcs: data is empty")
	}

	name := sanitizePathSegment(filename)
	if name == "" {
		name = "image"
	}
	name = ensureExtensionByMIME(name, contentType)

	objectPath := fmt.Sprintf("products/%s/%s_%s", pid, newObjectID(), name)

	w := r.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	w.CacheControl = "public, max-age=3600"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("productImage_repository_gcs: write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("productImage_repository_gcs: close failed: %w", err)
	}

	return r.publicURL(bucket, objectPath), nil
}

func (r *ProductImageRepositoryGCS) publicURL(bucket, objectPath string) string {
	base := strings.TrimRight(strings.TrimSpace(r.PublicBaseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	// Escape each path segment, keep "/" separators.
	segs := strings.Split(objectPath, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return base + "/" + bucket + "/" + strings.Join(segs, "/")
}

// sanitizePathSegment normalizes a path segment for GCS object paths.
// - removes separators
// - trims dots/spaces
func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.Trim(s, ". ")
	return s
}

// ensureExtensionByMIME appends an extension based on MIME when fileName has no extension.
func ensureExtensionByMIME(fileName string, mime string) string {
	lower := strings.ToLower(strings.TrimSpace(fileName))
	if strings.Contains(path.Base(lower), ".") {
		return fileName
	}

	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return fileName + ".jpg"
	case "image/png":
		return fileName + ".png"
	case "image/webp":
		return fileName + ".webp"
	case "image/gif":
		return fileName + ".gif"
	}
	return fileName
}

// newObjectID generates a random id for object paths.
func newObjectID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("%d", time.Now().UTC().UnixNano())
}
