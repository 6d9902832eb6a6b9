package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures an S3Store.
type S3Options struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicURL is the base of the URLs returned by URL.
	PublicURL string
}

// objectDeleter is the part of *s3.Client the store uses directly.
type objectDeleter interface {
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// uploader is satisfied by *manager.Uploader.
type uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store keeps blobs in a bucket of an S3-compatible service. Uploads go
// through the multipart upload manager so large photos stream in parts.
type S3Store struct {
	client    objectDeleter
	uploader  uploader
	bucket    string
	publicURL string
}

// NewS3Store builds a client with static credentials and path-style
// addressing, which S3-compatible services other than AWS require.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("blob.NewS3Store: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})
	return newS3Store(client, manager.NewUploader(client), opts.Bucket, opts.PublicURL), nil
}

func newS3Store(client objectDeleter, up uploader, bucket, publicURL string) *S3Store {
	return &S3Store{client: client, uploader: up, bucket: bucket, publicURL: publicURL}
}

func (s *S3Store) Save(ctx context.Context, prefix, contentType string, r io.Reader) (string, error) {
	key := newKey(prefix, contentType)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob.S3Store.Save: %w", err)
	}
	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return fmt.Errorf("blob.S3Store.Delete: %q: %w", key, ErrNotFound)
		}
		return fmt.Errorf("blob.S3Store.Delete: %w", err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	return objectURL(s.publicURL, s.bucket, key)
}

var _ Store = (*S3Store)(nil)
