package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

// Sink stores an exported file and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) ([]string, error)
}

// DirSink writes exports into a local directory.
type DirSink struct {
	Dir string
}

// Put writes name under the directory through a temp file.
func (s DirSink) Put(ctx context.Context, name, _ string, data []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	dst := filepath.Join(s.Dir, filepath.Base(name))

	tmp, err := os.CreateTemp(s.Dir, ".export-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("save export: %w", err)
	}
	log.Debug().Str("path", dst).Msg("export written")
	return []string{dst}, nil
}

// SpacesSink uploads exports to an S3-compatible bucket such as DigitalOcean
// Spaces and returns the public URL.
type SpacesSink struct {
	client   s3iface.S3API
	bucket   string
	cdnURL   string
	endpoint string
	prefix   string
}

// NewSpacesSink builds a client with static credentials.
func NewSpacesSink(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesSink, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return newSpacesSink(s3.New(sess), endpoint, bucket, cdnURL), nil
}

func newSpacesSink(client s3iface.S3API, endpoint, bucket, cdnURL string) *SpacesSink {
	return &SpacesSink{
		client:   client,
		bucket:   bucket,
		cdnURL:   strings.TrimRight(cdnURL, "/"),
		endpoint: strings.TrimRight(endpoint, "/"),
		prefix:   "schedules",
	}
}

// Put uploads data with a public-read ACL.
func (s *SpacesSink) Put(ctx context.Context, name, contentType string, data []byte) ([]string, error) {
	key := path.Join(s.prefix, path.Base(name))
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to spaces: %w", err)
	}
	url := s.publicURL(key)
	log.Info().Str("key", key).Str("url", url).Msg("export uploaded")
	return []string{url}, nil
}

func (s *SpacesSink) publicURL(key string) string {
	if s.cdnURL != "" {
		return s.cdnURL + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, host, key)
}

// MultiSink writes to every sink in order. All sinks are attempted; errors are
// joined.
type MultiSink []Sink

// Put implements Sink.
func (m MultiSink) Put(ctx context.Context, name, contentType string, data []byte) ([]string, error) {
	var (
		locs []string
		errs []error
	)
	for _, s := range m {
		got, err := s.Put(ctx, name, contentType, data)
		locs = append(locs, got...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return locs, errors.Join(errs...)
}
