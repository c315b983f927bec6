package uploads

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/netx"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	uploadToPresignedURL = netx.UploadToPresignedURL
	now                  = time.Now
)

// S3Options configures S3Uploader. BaseEndpoint is set for MinIO and other
// S3-compatible stores and left empty for AWS.
type S3Options struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Uploader presigns a PUT for a fresh key, streams the file to it and
// returns a presigned GET URL for the stored object.
type S3Uploader struct {
	opts S3Options
	log  logging.Logger
}

func NewS3Uploader(opts S3Options, log logging.Logger) *S3Uploader {
	return &S3Uploader{opts: opts, log: log.With("module", "uploads")}
}

// StorageKey returns a new random key for fileName, keeping its extension.
func StorageKey(fileName string) string {
	d := now().UTC()
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("profiles/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (u *S3Uploader) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.opts.AccessKey,
			u.opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

func (u *S3Uploader) Upload(ctx context.Context, f File) (*Object, error) {
	pc, err := u.presignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	bucket := u.opts.Bucket
	key := StorageKey(f.FileName)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presigning put: %w", err)
	}

	if err := uploadToPresignedURL(ctx, put.URL, f.Body, f.Size, contentType); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", key, err)
	}

	get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presigning get: %w", err)
	}

	u.log.Info(ctx, "file stored", "key", key, "size", f.Size, "content_type", contentType)

	return &Object{
		Key:         key,
		URL:         get.URL,
		FileName:    f.FileName,
		ContentType: contentType,
		Size:        f.Size,
	}, nil
}
