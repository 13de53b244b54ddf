package s3

import (
	"context"
	"time"

	"todoshare-backend/application/ports"
	apperrors "todoshare-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// AttachmentStore hands out presigned S3 upload URLs for item
// attachments. Objects are keyed by the item id, so re-uploading
// replaces the attachment.
type AttachmentStore struct {
	presigner  *s3.PresignClient
	bucket     string
	expiration time.Duration
	logger     *zap.Logger
}

// NewAttachmentStore creates a new AttachmentStore
func NewAttachmentStore(client *s3.Client, bucket string, expiration time.Duration, logger *zap.Logger) ports.AttachmentStore {
	return &AttachmentStore{
		presigner:  s3.NewPresignClient(client),
		bucket:     bucket,
		expiration: expiration,
		logger:     logger,
	}
}

// UploadURL returns a presigned PUT URL for the item's attachment
func (s *AttachmentStore) UploadURL(ctx context.Context, todoID string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(todoID),
	}, s3.WithPresignExpires(s.expiration))
	if err != nil {
		s.logger.Error("Failed to presign attachment upload",
			zap.Error(err),
			zap.String("todoId", todoID),
		)
		return "", apperrors.NewDatabaseError("presign attachment upload", err)
	}

	s.logger.Debug("Presigned attachment upload",
		zap.String("todoId", todoID),
		zap.Duration("expiration", s.expiration),
	)
	return req.URL, nil
}
