package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ecogrocery/backend/config"
)

// DishImageService stores dish images in S3
type DishImageService struct {
	s3Config *config.S3Config
}

// NewDishImageService creates a new DishImageService instance
func NewDishImageService(s3Config *config.S3Config) *DishImageService {
	return &DishImageService{s3Config: s3Config}
}

// Upload stores an image under dishes/<id>/<uuid><ext> and returns its
// public URL.
func (s *DishImageService) Upload(ctx context.Context, dishID int, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := contentTypeForExt(ext)
	if contentType == "" {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("dishes/%d/%s%s", dishID, uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return ""
}
