package assets

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store reads assets from an S3 bucket, for deployments where the
// template is provisioned separately from the binary.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates an S3Store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (s *S3Store) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching asset s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", key, err)
	}
	return data, nil
}

// Template returns the base receipt document.
func (s *S3Store) Template(ctx context.Context) ([]byte, error) {
	return s.get(ctx, TemplateKey)
}

// Signature returns the signature image.
func (s *S3Store) Signature(ctx context.Context) ([]byte, error) {
	return s.get(ctx, SignatureKey)
}
