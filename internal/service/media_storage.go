package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// MediaStorage provisions placeholder media for lecture records.
type MediaStorage interface {
	// ProvisionPlaceholder copies the placeholder template to a per-lecture
	// key and returns the storage path.
	ProvisionPlaceholder(ctx context.Context, courseID string, position int) (string, error)
}

type s3MediaStorage struct {
	s3Client    *s3.Client
	bucketName  string
	templateKey string
	logger      zerolog.Logger
}

// NewS3MediaStorage creates a MediaStorage backed by an S3-compatible bucket.
func NewS3MediaStorage(s3Client *s3.Client, bucketName, templateKey string, logger zerolog.Logger) MediaStorage {
	return &s3MediaStorage{
		s3Client:    s3Client,
		bucketName:  bucketName,
		templateKey: templateKey,
		logger:      logger.With().Str("service", "MediaStorage").Logger(),
	}
}

// ProvisionPlaceholder copies the template object so later uploads can
// overwrite the lecture's own key without touching the template.
func (s *s3MediaStorage) ProvisionPlaceholder(ctx context.Context, courseID string, position int) (string, error) {
	storagePath := fmt.Sprintf("courses/%s/lectures/%d/placeholder.mp4", courseID, position)
	copySource := fmt.Sprintf("%s/%s", s.bucketName, s.templateKey)
	_, err := s.s3Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucketName),
		CopySource: aws.String(copySource),
		Key:        aws.String(storagePath),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("source", copySource).
			Str("target", storagePath).
			Msg("Failed to copy placeholder media template")
		return "", fmt.Errorf("failed to copy placeholder template: %w", err)
	}
	return storagePath, nil
}
