package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"quicknotes/internal/config"
	"quicknotes/internal/models"
)

const avatarUploadTTL = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

type AvatarUpload struct {
	PublicID  string `json:"public_id"`
	UploadURL string `json:"upload_url"`
}

type AvatarService interface {
	PresignUpload(ctx context.Context, userID string) (*AvatarUpload, error)
	Confirm(ctx context.Context, userID, publicID string) (*models.User, error)
}

type avatarService struct {
	cfg   config.StorageConfig
	users UserService
}

func NewAvatarService(cfg config.StorageConfig, users UserService) AvatarService {
	return &avatarService{cfg: cfg, users: users}
}

func avatarPrefix(userID string) string {
	return "avatars/" + userID + "/"
}

func (s *avatarService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client), nil
}

func (s *avatarService) PresignUpload(ctx context.Context, userID string) (*AvatarUpload, error) {
	if !s.cfg.Enabled() {
		return nil, ErrStorageDisabled
	}
	pc, err := s.presignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 config: %v", ErrExternalService, err)
	}

	bucket := s.cfg.Bucket
	key := avatarPrefix(userID) + uuid.NewString()
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(avatarUploadTTL))
	if err != nil {
		return nil, fmt.Errorf("%w: presign put: %v", ErrExternalService, err)
	}
	return &AvatarUpload{PublicID: key, UploadURL: req.URL}, nil
}

// Confirm принимает только ключи из префикса самого пользователя.
func (s *avatarService) Confirm(ctx context.Context, userID, publicID string) (*models.User, error) {
	if !s.cfg.Enabled() {
		return nil, ErrStorageDisabled
	}
	publicID = strings.TrimSpace(publicID)
	prefix := avatarPrefix(userID)
	if !strings.HasPrefix(publicID, prefix) || len(publicID) == len(prefix) || strings.Contains(publicID, "..") {
		return nil, invalid("Invalid avatar reference")
	}
	avatar := models.Avatar{
		PublicID: publicID,
		URL:      strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + publicID,
	}
	return s.users.UpdateAvatar(ctx, userID, avatar)
}
