package storage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// decoders for uploaded formats
	_ "image/gif"
	_ "image/png"
)

const (
	FolderCovers   = "covers"
	FolderProfiles = "profiles"

	jpegQuality = 90
)

type Config struct {
	Endpoint  string `envconfig:"S3_ENDPOINT"`
	Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket    string `envconfig:"S3_BUCKET"`
	AccessKey string `envconfig:"S3_ACCESS_KEY"`
	SecretKey string `envconfig:"S3_SECRET_KEY"`
	PublicURL string `envconfig:"S3_PUBLIC_URL"`
}

func (c Config) Enabled() bool {
	return c.Bucket != ""
}

func NewClient(cfg Config) (s3iface.S3API, error) {
	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "s3 session")
	}
	return s3.New(sess), nil
}

// ImageStore keeps pictures as public JPEG objects.
type ImageStore struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
	log       *zap.Logger
}

func NewImageStore(client s3iface.S3API, cfg Config, log *zap.Logger) *ImageStore {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return &ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log.Named("storage"),
	}
}

// Put converts data to JPEG, uploads it under folder and returns its public URL.
func (s *ImageStore) Put(ctx context.Context, folder string, data []byte) (string, error) {
	body, err := ToJPEG(data)
	if err != nil {
		return "", err
	}
	key := folder + "/" + uuid.NewString() + ".jpg"
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/jpeg"),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		s.log.Error("put object", zap.String("key", key), zap.Error(err))
		return "", errors.Wrap(err, "put object")
	}
	return s.publicURL + "/" + key, nil
}

func ToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
