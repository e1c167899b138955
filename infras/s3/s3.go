package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"sportshub/config"
	"sportshub/infras/otel"
	"sportshub/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 stores documents in an S3-compatible bucket (payment receipts).
type S3 interface {
	UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error)
	PutJSON(ctx context.Context, directory, fileName string, document any) (url string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.Config.External.S3.BucketName
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	reader := bytes.NewReader(fileData)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload object to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return PublicURL(svc.Config.External.S3.PublicDomain, objectKey), nil
}

// PutJSON marshals document and stores it as <directory>/<fileName>.
func (svc *s3Impl) PutJSON(ctx context.Context, directory, fileName string, document any) (string, error) {
	body, err := json.Marshal(document)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal document: %w", err)
	}

	return svc.UploadFileBytes(ctx, directory, fileName, constant.ContentTypeJSON, body)
}

// PublicURL joins the public domain and the object key with exactly one slash.
func PublicURL(publicDomain, objectKey string) string {
	return strings.TrimRight(publicDomain, "/") + "/" + strings.TrimLeft(objectKey, "/")
}

type noopS3 struct{}

func (noopS3) UploadFileBytes(_ context.Context, directory, fileName, _ string, _ []byte) (string, error) {
	log.Debug().Str("key", path.Join(directory, fileName)).Msg("S3 disabled, object not stored")

	return constant.Empty, nil
}

func (n noopS3) PutJSON(ctx context.Context, directory, fileName string, _ any) (string, error) {
	return n.UploadFileBytes(ctx, directory, fileName, constant.ContentTypeJSON, nil)
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	if !cfg.External.S3.Enable {
		log.Warn().Msg("S3 disabled, receipts are not archived")

		return noopS3{}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		cfg.External.S3.AccessKeyID,
		cfg.External.S3.SecretAccessKey,
		"",
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		Client: s3Client,
		Config: cfg,
		otel:   otel,
	}
}
