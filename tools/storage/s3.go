package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3DatasetState implements DatasetState backed by S3

type S3DatasetState struct {
	bucket string
	key    string
	s3     s3API
}

func NewS3DatasetState(s3Client s3API, bucket, key string) *S3DatasetState {
	return &S3DatasetState{
		bucket: bucket,
		key:    key,
		s3:     s3Client,
	}
}

func (s *S3DatasetState) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset object from S3: %w", err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// S3PreferenceLog implements PreferenceLog on a single S3 object holding the JSON list.

type S3PreferenceLog struct {
	bucket string
	key    string
	s3     s3API
}

func NewS3PreferenceLog(s3Client s3API, bucket, key string) *S3PreferenceLog {
	return &S3PreferenceLog{
		bucket: bucket,
		key:    key,
		s3:     s3Client,
	}
}

func (s *S3PreferenceLog) Append(ctx context.Context, p Preference) (string, error) {
	existing, err := s.read(ctx)
	if err != nil {
		return "", err
	}
	b, err := appendPreference(existing, p)
	if err != nil {
		return "", err
	}

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put preferences object to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key), nil
}

// read returns nil when the object does not exist yet.
func (s *S3PreferenceLog) read(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences object from S3: %w", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}
	return b, nil
}
