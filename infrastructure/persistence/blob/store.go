// Package blob stores manifestation base texts in S3. The graph holds only
// structure and spans; the text bytes live here, keyed by expression and
// manifestation id.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	apperrors "textgraph/pkg/errors"
)

// Store reads and writes base texts in one bucket
type Store struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewStore creates a Store over the given bucket
func NewStore(client *s3.Client, bucket string, logger *zap.Logger) *Store {
	return &Store{client: client, bucket: bucket, logger: logger}
}

func (s *Store) key(expressionID, manifestationID string) string {
	return fmt.Sprintf("base_texts/%s/%s.txt", expressionID, manifestationID)
}

// Put writes the full base text of a manifestation
func (s *Store) Put(ctx context.Context, expressionID, manifestationID, content string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(expressionID, manifestationID)),
		Body:        strings.NewReader(content),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return apperrors.NewExternalError("store base text", err)
	}
	return nil
}

// Get reads the full base text of a manifestation
func (s *Store) Get(ctx context.Context, expressionID, manifestationID string) (string, error) {
	return s.get(ctx, expressionID, manifestationID, nil)
}

// GetRange reads the byte range [start, end) of the base text
func (s *Store) GetRange(ctx context.Context, expressionID, manifestationID string, start, end int) (string, error) {
	if end <= start {
		return "", nil
	}
	byteRange := fmt.Sprintf("bytes=%d-%d", start, end-1)
	return s.get(ctx, expressionID, manifestationID, &byteRange)
}

func (s *Store) get(ctx context.Context, expressionID, manifestationID string, byteRange *string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(expressionID, manifestationID)),
		Range:  byteRange,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", apperrors.NewNotFoundError("base text of manifestation " + manifestationID)
		}
		return "", apperrors.NewExternalError("read base text", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", apperrors.NewExternalError("read base text", err)
	}
	return string(data), nil
}

// Delete removes the base text. Used to roll back a create whose graph
// transaction failed, and when the manifestation itself is deleted.
func (s *Store) Delete(ctx context.Context, expressionID, manifestationID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(expressionID, manifestationID)),
	})
	if err != nil {
		return apperrors.NewExternalError("delete base text", err)
	}
	return nil
}
