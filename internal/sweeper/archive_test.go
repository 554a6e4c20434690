package sweeper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/pastelog/pastelog/internal/models"
)

func stubArchiver(t *testing.T, put func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error)) *S3Archiver {
	t.Helper()

	origPut := putObject
	t.Cleanup(func() { putObject = origPut })
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return put(ctx, in)
	}

	a, err := NewS3Archiver(context.Background(), S3Options{
		Region:    "us-east-1",
		Bucket:    "pastelog-archive",
		AccessKey: "test",
		SecretKey: "test",
		Prefix:    "purged/",
	})
	require.NoError(t, err)
	return a
}

func TestS3Archiver_Archive(t *testing.T) {
	var gotKey string
	var gotBody []byte

	a := stubArchiver(t, func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotKey = aws.ToString(in.Key)
		var err error
		gotBody, err = io.ReadAll(in.Body)
		require.NoError(t, err)
		return &s3.PutObjectOutput{}, nil
	})

	record := &models.Log{
		ID:          "l1",
		Data:        "payload",
		CreatedDate: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, a.Archive(context.Background(), record))
	require.Equal(t, "purged/2025/03/07/l1.json", gotKey)

	var decoded models.Log
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	require.Equal(t, "payload", decoded.Data)
}

func TestS3Archiver_PutFailure(t *testing.T) {
	a := stubArchiver(t, func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	})

	err := a.Archive(context.Background(), &models.Log{ID: "l1", CreatedDate: time.Now()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "l1")
}
