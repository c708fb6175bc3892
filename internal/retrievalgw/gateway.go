// Package retrievalgw hands out presigned URLs against the S3-compatible
// store that holds sealed content. Content bytes never pass through the
// marketplace process.
package retrievalgw

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stormarket/stormarket/internal/config"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

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
)

// Gateway presigns upload and download URLs for sealed content.
type Gateway struct {
	config *config.Config
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{config: cfg}
}

// MakeStorageKey returns a fresh object key partitioned by date.
func MakeStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("content/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (g *Gateway) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(g.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			g.config.S3RootUser,
			g.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(g.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignedPutURL returns a fresh storage key plus a URL the client can
// upload content to before sealing a deal over it.
func (g *Gateway) PresignedPutURL(ctx context.Context) (string, string, error) {
	presignClient, err := g.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := g.config.S3Bucket
	key := MakeStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(g.config.PresignValidity))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignedGetURL returns a time-limited download URL for the given key.
func (g *Gateway) PresignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := g.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := g.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(g.config.PresignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
