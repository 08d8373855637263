package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"media-feed/pkg/config"
	"media-feed/pkg/storage"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Client struct {
	s3Client  *s3.S3
	bucket    string
	folder    string
	publicURL string
}

var _ storage.Gateway = (*Client)(nil)

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	// Ensure bucket exists (for MinIO and local stacks)
	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.StorageBucket),
	})
	if err != nil {
		// Ignore create errors: the bucket may exist but be unreadable to HeadBucket
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.StorageBucket),
		})
	}

	return client, nil
}

func newClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.StorageRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.StoragePublicKey,
			cfg.StoragePrivateKey,
			"",
		),
	}

	// Support S3-compatible endpoints for local development
	if cfg.StorageEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.StorageEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(!cfg.StorageUseSSL)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client:  s3.New(sess),
		bucket:    cfg.StorageBucket,
		folder:    cfg.StorageFolder,
		publicURL: cfg.StorageURLEndpoint,
	}, nil
}

func (c *Client) Upload(ctx context.Context, r io.ReadSeeker, size int64, fileName string, opts storage.UploadOptions) (*storage.UploadResult, error) {
	name := storage.ObjectName(fileName, opts.UseUniqueFileName)
	key := storage.ObjectKey(c.folder, name)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if tagging := storage.EncodeTags(opts.Tags); tagging != "" {
		input.Tagging = aws.String(tagging)
	}

	req, _ := c.s3Client.PutObjectRequest(input)
	req.SetContext(ctx)
	err := req.Send()

	status := 0
	if req.HTTPResponse != nil {
		status = req.HTTPResponse.StatusCode
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return &storage.UploadResult{
		FileID:         key,
		Name:           name,
		URL:            c.objectURL(key),
		HTTPStatusCode: status,
	}, nil
}

func (c *Client) Delete(ctx context.Context, fileID string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func (c *Client) objectURL(key string) string {
	if c.publicURL != "" {
		return storage.PublicURL(c.publicURL, key)
	}

	// Generate URL based on endpoint (S3-compatible or AWS S3)
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "http"
		if c.s3Client.Config.DisableSSL != nil && !*c.s3Client.Config.DisableSSL {
			protocol = "https"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
