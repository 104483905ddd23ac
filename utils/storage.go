package utils

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const storagePrefix = "colorie-tracker-rec"

// R2Storage uploads optimized food photos to a Cloudflare R2 bucket
// through the S3 API and deletes them when an analysis is discarded.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewR2Storage(ctx context.Context, accountID, accessKeyID, secretAccessKey, bucket, publicURL string) (*R2Storage, error) {
	if accountID == "" || bucket == "" {
		return nil, fmt.Errorf("R2 account id and bucket are required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Storage{client: client, bucket: bucket, publicURL: publicURL}, nil
}

// UploadImage stores a JPEG under a random key and returns its public
// URL plus the key needed to delete it later.
func (r *R2Storage) UploadImage(ctx context.Context, data []byte) (url, key string, err error) {
	name := make([]byte, 16)
	if _, err := rand.Read(name); err != nil {
		return "", "", fmt.Errorf("generate object name: %w", err)
	}
	key = fmt.Sprintf("%s/%s.jpeg", storagePrefix, hex.EncodeToString(name))

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", "", fmt.Errorf("upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", r.publicURL, key), key, nil
}

func (r *R2Storage) DeleteImage(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete from R2: %w", err)
	}
	return nil
}
