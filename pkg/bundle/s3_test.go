package bundle_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/bundle"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func newS3Store(t *testing.T, client bundle.S3Client, prefix string) *bundle.S3Store {
	t.Helper()
	s, err := bundle.NewS3Store(context.Background(), bundle.S3Config{
		Bucket: "scripts",
		Region: "us-east-1",
		Prefix: prefix,
	}, bundle.WithS3Client(client))
	require.NoError(t, err)
	return s
}

func TestNewS3Store(t *testing.T) {
	t.Parallel()

	_, err := bundle.NewS3Store(context.Background(), bundle.S3Config{Bucket: "scripts"})
	assert.ErrorIs(t, err, bundle.ErrInvalidConfig)

	_, err = bundle.NewS3Store(context.Background(), bundle.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, bundle.ErrInvalidConfig)

	s, err := bundle.NewS3Store(context.Background(), bundle.S3Config{
		Bucket:         "scripts",
		Region:         "us-east-1",
		AccessKeyID:    "key",
		SecretKey:      "secret",
		Endpoint:       "http://localhost:9000",
		ForcePathStyle: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestS3Store_Open(t *testing.T) {
	t.Parallel()

	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	client := new(MockS3Client)
	client.On("GetObject",
		mock.Anything,
		mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Bucket) == "scripts" && aws.ToString(in.Key) == "v2/es2020/userflow.js"
		}),
		mock.Anything,
	).Return(&s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader("export {};")),
		ContentLength: aws.Int64(10),
		ContentType:   aws.String("text/javascript"),
		ETag:          aws.String(`"abc"`),
		LastModified:  aws.Time(modified),
	}, nil)

	s := newS3Store(t, client, "/v2/")
	rc, info, err := s.Open(context.Background(), target.ES2020, "userflow.js")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "export {};", string(body))
	assert.Equal(t, bundle.Info{
		Name:        "userflow.js",
		Size:        10,
		ContentType: "text/javascript",
		ETag:        `"abc"`,
		ModTime:     modified,
	}, info)
	client.AssertExpectations(t)
}

func TestS3Store_OpenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		s3Err  error
		target error
	}{
		{"no such key", &types.NoSuchKey{}, bundle.ErrNotFound},
		{"generic not found", &smithy.GenericAPIError{Code: "NotFound"}, bundle.ErrNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, bundle.ErrAccessDenied},
		{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, bundle.ErrServiceUnavailable},
		{"deadline", context.DeadlineExceeded, context.DeadlineExceeded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := new(MockS3Client)
			client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.s3Err)

			rc, _, err := newS3Store(t, client, "").Open(context.Background(), target.Legacy, "userflow.js")
			assert.ErrorIs(t, err, tc.target)
			assert.Nil(t, rc)
			client.AssertExpectations(t)
		})
	}

	t.Run("unknown code keeps cause", func(t *testing.T) {
		t.Parallel()

		cause := &smithy.GenericAPIError{Code: "Teapot"}
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		_, _, err := newS3Store(t, client, "").Open(context.Background(), target.Legacy, "userflow.js")
		var apiErr smithy.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Teapot", apiErr.ErrorCode())
	})

	t.Run("invalid path never reaches S3", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		_, _, err := newS3Store(t, client, "").Open(context.Background(), target.Legacy, "../x.js")
		assert.ErrorIs(t, err, bundle.ErrInvalidPath)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
	})
}
