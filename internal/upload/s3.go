package upload

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPrefix   = config.DefaultUploadPrefix
	defaultRegion   = config.DefaultRegion
	writeTestKey    = ".bench-report-write-test"
	maxParallelPuts = 4
)

// objectPutter is the subset of the S3 client used here.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Uploader struct {
	log    zerolog.Logger
	cfg    *config.S3UploadConfig
	client objectPutter
}

var _ Uploader = (*s3Uploader)(nil)

// NewS3Uploader creates an uploader for an S3-compatible bucket.
func NewS3Uploader(cfg *config.S3UploadConfig) (Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = defaultRegion
		if cfg.Region != "" {
			o.Region = cfg.Region
		}

		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}

		o.UsePathStyle = cfg.ForcePathStyle

		if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, "",
			)
		}
	})

	return newS3Uploader(cfg, client), nil
}

func newS3Uploader(cfg *config.S3UploadConfig, client objectPutter) *s3Uploader {
	return &s3Uploader{
		log:    log.With().Str("component", "s3-uploader").Str("bucket", cfg.Bucket).Logger(),
		cfg:    cfg,
		client: client,
	}
}

// Preflight verifies connectivity by writing a small marker object.
func (u *s3Uploader) Preflight(ctx context.Context) error {
	content := fmt.Sprintf("bench-report write test: %s", time.Now().UTC().Format(time.RFC3339))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(u.key("", writeTestKey)),
		Body:        strings.NewReader(content),
		ContentType: aws.String("text/plain"),
	})
	if err != nil {
		return fmt.Errorf("writing test object to s3://%s: %w", u.cfg.Bucket, err)
	}

	return nil
}

// Upload sends files to <prefix>/<runID>/<file name>.
func (u *s3Uploader) Upload(ctx context.Context, runID string, files []string) ([]string, error) {
	keys := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPuts)

	for i, path := range files {
		path := path // per-iteration copy (go 1.21 loop semantics)
		keys[i] = u.key(runID, filepath.Base(path))
		key := keys[i]

		g.Go(func() error {
			if err := u.uploadFile(ctx, path, key); err != nil {
				return fmt.Errorf("uploading %s: %w", path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	u.log.Info().
		Int("files", len(files)).
		Str("prefix", u.resolvePrefix(runID)).
		Msg("Upload completed")

	return keys, nil
}

func (u *s3Uploader) uploadFile(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = f.Close() }()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(detectContentType(localPath)),
	}

	if u.cfg.StorageClass != "" {
		input.StorageClass = s3types.StorageClass(u.cfg.StorageClass)
	}

	u.log.Debug().Str("key", key).Msg("Uploading file")

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("PutObject: %w", err)
	}

	return nil
}

// resolvePrefix builds the key prefix for one run.
func (u *s3Uploader) resolvePrefix(runID string) string {
	prefix := strings.Trim(u.cfg.Prefix, "/")
	if prefix == "" {
		prefix = defaultPrefix
	}

	if runID == "" {
		return prefix
	}
	return prefix + "/" + runID
}

func (u *s3Uploader) key(runID, name string) string {
	return u.resolvePrefix(runID) + "/" + name
}

// detectContentType returns a MIME type based on file extension.
func detectContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "":
		return "application/octet-stream"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".db":
		return "application/vnd.sqlite3"
	}

	ct := mime.TypeByExtension(ext)
	if ct == "" {
		return "application/octet-stream"
	}

	return ct
}
