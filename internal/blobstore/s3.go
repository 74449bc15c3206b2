// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"codeberg.org/oliverandrich/donatetracker/internal/config"
)

// S3 stores blobs in an S3-compatible bucket (AWS or MinIO).
type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 creates an S3 store from the uploads configuration. Static
// credentials and a custom endpoint are optional; without them the
// default AWS credential chain and endpoints apply.
func NewS3(ctx context.Context, cfg config.UploadsConfig) (*S3, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// MinIO and friends want path-style addressing
			o.UsePathStyle = true
		}
	})

	return &S3{client: client, bucket: cfg.S3Bucket}, nil
}

// Save uploads the blob and returns its object key as the reference.
func (s *S3) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := "receipts/" + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("uploading receipt: %w", err)
	}
	return key, nil
}
