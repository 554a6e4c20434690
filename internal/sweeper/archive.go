package sweeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pastelog/pastelog/internal/models"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// Archiver stores a copy of a record before it is purged.
type Archiver interface {
	Archive(ctx context.Context, log *models.Log) error
}

// S3Options configures the archive bucket. BaseEndpoint is optional and
// supports S3-compatible stores such as MinIO.
type S3Options struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Prefix       string
}

// S3Archiver writes purged records as JSON objects to an S3 bucket, keyed
// by creation date and record identifier.
type S3Archiver struct {
	opts   S3Options
	client *s3.Client
}

func NewS3Archiver(ctx context.Context, opts S3Options) (*S3Archiver, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
	})

	return &S3Archiver{opts: opts, client: client}, nil
}

func (a *S3Archiver) key(log *models.Log) string {
	d := log.CreatedDate
	return fmt.Sprintf("%s%d/%02d/%02d/%s.json", a.opts.Prefix, d.Year(), d.Month(), d.Day(), log.ID)
}

func (a *S3Archiver) Archive(ctx context.Context, log *models.Log) error {
	body, err := json.Marshal(log)
	if err != nil {
		return err
	}

	key := a.key(log)
	_, err = putObject(a.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error archiving %s: %w", log.ID, err)
	}
	return nil
}
