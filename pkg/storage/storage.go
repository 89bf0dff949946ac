package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"go.uber.org/zap"
)

// Client is an S3-compatible object store client used for enquiry
// attachments.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// NewClient creates a new object storage client using the S3 SDK.
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*Client, error) {
	if endpoint == "" {
		endpoint = "https://s3.eu-west-2.amazonaws.com"
	}
	if region == "" {
		region = "eu-west-2"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadAttachment streams one enquiry attachment to the bucket and
// returns its object URL.
func (c *Client) UploadAttachment(ctx context.Context, body io.Reader, key, contentType string, size int64) (string, error) {
	start := time.Now()
	operation := "uploadAttachment"

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int64("size_bytes", size),
	)

	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, key), nil
}
