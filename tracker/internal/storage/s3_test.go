package storage_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/Astemirdum/book-tracker/tracker/internal/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	return &s3.PutObjectOutput{}, nil
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestImageStore_Put(t *testing.T) {
	t.Parallel()
	fake := &fakeS3{}
	store := storage.NewImageStore(fake, storage.Config{
		Bucket:    "tracker",
		PublicURL: "https://cdn.example.com/tracker/",
	}, zap.NewExample().Named("test"))

	url, err := store.Put(context.Background(), storage.FolderCovers, pngOf(t, 240, 320))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/tracker/covers/"))
	require.True(t, strings.HasSuffix(url, ".jpg"))

	require.Equal(t, "tracker", aws.StringValue(fake.input.Bucket))
	require.Equal(t, "image/jpeg", aws.StringValue(fake.input.ContentType))
	require.True(t, strings.HasSuffix(url, aws.StringValue(fake.input.Key)))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(fake.body))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 240, cfg.Width)
	require.Equal(t, 320, cfg.Height)
}

func TestImageStore_Put_Errors(t *testing.T) {
	t.Parallel()
	store := storage.NewImageStore(&fakeS3{err: errors.New("boom")}, storage.Config{
		Endpoint: "http://minio:9000",
		Bucket:   "tracker",
	}, zap.NewExample().Named("test"))

	_, err := store.Put(context.Background(), storage.FolderProfiles, pngOf(t, 200, 200))
	require.ErrorContains(t, err, "boom")

	_, err = store.Put(context.Background(), storage.FolderProfiles, []byte("not an image"))
	require.ErrorContains(t, err, "decode image")
}
