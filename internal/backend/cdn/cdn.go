// Package cdn stores user images in an S3 compatible bucket served through a
// public URL that understands resize parameters.
package cdn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	DefaultThumbnailSize = 300
	DefaultMaxBytes      = 5 << 20
	AvatarFolder         = "avatars"
)

var (
	ErrEmpty       = errors.New("cdn: empty upload")
	ErrTooLarge    = errors.New("cdn: image too large")
	ErrUnsupported = errors.New("cdn: unsupported image format")
)

// Image is an uploaded object.
type Image struct {
	URL      string
	PublicID string
	Width    int
	Height   int
}

// ObjectAPI is the part of the S3 client the bucket needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Bucket struct {
	api       ObjectAPI
	name      string
	publicURL string

	// MaxBytes caps uploads; zero means DefaultMaxBytes.
	MaxBytes int64
}

// NewBucket serves objects of bucket name from publicURL.
func NewBucket(api ObjectAPI, name, publicURL string) *Bucket {
	return &Bucket{
		api:       api,
		name:      name,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (b *Bucket) maxBytes() int64 {
	if b.MaxBytes > 0 {
		return b.MaxBytes
	}
	return DefaultMaxBytes
}

// Upload validates r as a GIF, JPEG or PNG image and stores it under folder
// with a fresh public id.
func (b *Bucket) Upload(ctx context.Context, r io.Reader, folder string) (Image, error) {
	limit := b.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Image{}, fmt.Errorf("cdn: read upload: %w", err)
	}
	switch {
	case len(data) == 0:
		return Image{}, ErrEmpty
	case int64(len(data)) > limit:
		return Image{}, ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	publicID := path(folder, uuid.NewString()+"."+extension(format))
	_, err = b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(b.name),
		Key:          aws.String(publicID),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/" + format),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return Image{}, fmt.Errorf("cdn: upload %s: %w", publicID, err)
	}

	return Image{
		URL:      b.publicURL + "/" + publicID,
		PublicID: publicID,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (b *Bucket) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("cdn: delete %s: %w", publicID, err)
	}
	return nil
}

// ThumbnailURL returns a cropped, format-negotiated rendition of publicID.
// Non-positive sizes fall back to DefaultThumbnailSize.
func (b *Bucket) ThumbnailURL(publicID string, width, height int) string {
	if width <= 0 {
		width = DefaultThumbnailSize
	}
	if height <= 0 {
		height = DefaultThumbnailSize
	}

	q := url.Values{}
	q.Set("w", strconv.Itoa(width))
	q.Set("h", strconv.Itoa(height))
	q.Set("fit", "crop")
	q.Set("auto", "format")
	return b.publicURL + "/" + publicID + "?" + q.Encode()
}

func path(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func extension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
