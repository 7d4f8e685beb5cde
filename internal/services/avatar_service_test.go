package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/config"
	"quicknotes/internal/models"
	"quicknotes/internal/repositories/memory"
)

func storageConfig() config.StorageConfig {
	return config.StorageConfig{
		Bucket:        "avatars",
		Region:        "us-east-1",
		BaseEndpoint:  "http://127.0.0.1:9000",
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		PublicBaseURL: "http://127.0.0.1:9000/avatars/",
	}
}

func stubS3(t *testing.T, presign func(in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error)) {
	t.Helper()
	origLoad, origNew, origPresign := loadDefaultAWSConfig, newS3ClientFromConfig, presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, presignPutObject = origLoad, origNew, origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return presign(in)
	}
}

func TestAvatarPresignUpload(t *testing.T) {
	stubS3(t, func(in *s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "avatars", *in.Bucket)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/avatars/" + *in.Key + "?sig", Method: http.MethodPut}, nil
	})
	svc := NewAvatarService(storageConfig(), NewUserService(memory.NewStore().Users(), nil))

	up, err := svc.PresignUpload(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.PublicID, "avatars/u-1/"))
	assert.Contains(t, up.UploadURL, up.PublicID)
}

func TestAvatarPresignUpload_Errors(t *testing.T) {
	users := NewUserService(memory.NewStore().Users(), nil)

	_, err := NewAvatarService(config.StorageConfig{}, users).PresignUpload(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	stubS3(t, func(*s3.PutObjectInput) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("signer exploded")
	})
	_, err = NewAvatarService(storageConfig(), users).PresignUpload(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestAvatarConfirm(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(memory.NewStore().Users(), nil)
	u, _, err := users.Provision(ctx, &models.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	svc := NewAvatarService(storageConfig(), users)

	key := "avatars/" + u.ID + "/abc"
	updated, err := svc.Confirm(ctx, u.ID, key)
	require.NoError(t, err)
	assert.Equal(t, key, updated.Avatar.PublicID)
	assert.Equal(t, "http://127.0.0.1:9000/avatars/"+key, updated.Avatar.URL)

	for _, bad := range []string{
		"avatars/someone-else/abc",
		"avatars/" + u.ID + "/",
		"avatars/" + u.ID + "/../x",
		"",
	} {
		_, err := svc.Confirm(ctx, u.ID, bad)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr, bad)
	}
}
