package s3bucket

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memS3 is an in-memory bucket returning one key per list page.
type memS3 struct {
	objects map[string][]byte
	headErr error
}

func newMemS3() *memS3 {
	return &memS3{objects: map[string][]byte{}}
}

func (m *memS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[*in.Key] = b
	return &s3.PutObjectOutput{}, nil
}

func notFound() error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusNotFound}},
			Err:      errors.New("NotFound"),
		},
	}
}

func (m *memS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.headErr != nil {
		return nil, m.headErr
	}
	if _, ok := m.objects[*in.Key]; !ok {
		return nil, notFound()
	}
	return &s3.HeadObjectOutput{}, nil
}

func (m *memS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range m.objects {
		if in.Prefix == nil || strings.HasPrefix(k, *in.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for start < len(keys) && keys[start] <= *in.ContinuationToken {
			start++
		}
	}
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if start < len(keys) {
		out.Contents = []types.Object{{Key: aws.String(keys[start])}}
		if start+1 < len(keys) {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = aws.String(keys[start])
		}
	}
	return out, nil
}

func TestUploadExistsList(t *testing.T) {
	ctx := context.Background()
	mem := newMemS3()
	b := NewS3BucketWithClient(mem, "eu-central-1", "exports")

	url, err := b.Upload(ctx, []byte("x"), "a/1.zst", "application/zstd")
	require.NoError(t, err)
	assert.Equal(t, "https://exports.s3.eu-central-1.amazonaws.com/a/1.zst", url)
	_, err = b.Upload(ctx, []byte("y"), "a/2.zst", "application/zstd")
	require.NoError(t, err)
	_, err = b.Upload(ctx, []byte("z"), "b/1.zst", "application/zstd")
	require.NoError(t, err)

	ok, err := b.Exists(ctx, "a/1.zst")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Exists(ctx, "a/3.zst")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := b.ListFiles(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.zst", "a/2.zst"}, keys)
}

func TestExistsPropagatesOtherErrors(t *testing.T) {
	mem := newMemS3()
	mem.headErr = errors.New("AccessDenied")
	_, err := NewS3BucketWithClient(mem, "r", "b").Exists(context.Background(), "k")
	require.Error(t, err)
}
