package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go-onboarding-wizard/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectAPI struct {
	mock.Mock
}

func (m *MockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestBlobRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save puts the object under the prefix", func(t *testing.T) {
		api := new(MockObjectAPI)
		repo := NewBlobRepository(api, "bucket", "onboarding/form-1")

		api.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.Bucket) == "bucket" &&
				aws.ToString(in.Key) == "onboarding/form-1/profilePicture" &&
				aws.ToString(in.ContentType) == "image/jpeg" &&
				in.Metadata["filename"] == "me.jpg"
		})).Return(&s3.PutObjectOutput{}, nil)

		err := repo.Save(ctx, domain.ProfilePictureKey, domain.Blob{
			Data: []byte("jpeg"), ContentType: "image/jpeg", Filename: "me.jpg",
		})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("load reads body and metadata", func(t *testing.T) {
		api := new(MockObjectAPI)
		repo := NewBlobRepository(api, "bucket", "p")
		modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

		api.On("GetObject", ctx, mock.Anything).Return(&s3.GetObjectOutput{
			Body:         io.NopCloser(bytes.NewReader([]byte("png-bytes"))),
			ContentType:  aws.String("image/png"),
			Metadata:     map[string]string{"filename": "me.png"},
			LastModified: aws.Time(modified),
		}, nil)

		blob, err := repo.Load(ctx, domain.ProfilePictureKey)
		require.NoError(t, err)
		require.NotNil(t, blob)
		assert.Equal(t, []byte("png-bytes"), blob.Data)
		assert.Equal(t, "image/png", blob.ContentType)
		assert.Equal(t, "me.png", blob.Filename)
		assert.Equal(t, 9, blob.Size)
		assert.Equal(t, modified, blob.UpdatedAt)
	})

	t.Run("missing object loads as nil", func(t *testing.T) {
		api := new(MockObjectAPI)
		repo := NewBlobRepository(api, "bucket", "p")
		api.On("GetObject", ctx, mock.Anything).Return(nil, &types.NoSuchKey{})

		blob, err := repo.Load(ctx, domain.ProfilePictureKey)
		require.NoError(t, err)
		assert.Nil(t, blob)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		api := new(MockObjectAPI)
		repo := NewBlobRepository(api, "bucket", "p")
		api.On("DeleteObject", ctx, mock.Anything).Return(nil, errors.New("access denied"))

		err := repo.Remove(ctx, domain.ProfilePictureKey)
		assert.ErrorContains(t, err, "access denied")
	})
}
