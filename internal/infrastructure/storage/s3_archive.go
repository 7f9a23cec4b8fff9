// Package storage archivo de los PDF generados en un bucket S3 o compatible (MinIO, R2).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/pkg/config"
)

var _ billing.DocumentArchive = (*S3Archive)(nil)

const pdfContentType = "application/pdf"

// S3Archive guarda cada documento como un objeto bajo Prefix.
type S3Archive struct {
	client *s3.Client
	bucket string
	prefix string
	log    zerolog.Logger
}

// NewS3Archive crea el cliente. Sin access key se usa la cadena de credenciales por
// defecto del SDK (variables AWS_*, perfil, rol de la instancia).
func NewS3Archive(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		if cfg.SecretKey == "" {
			return nil, errors.New("storage: secret key requerida junto con access key")
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: config AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint))
		}
	})

	return &S3Archive{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		log:    log,
	}, nil
}

// Save sube data con Content-Type application/pdf y devuelve s3://bucket/clave.
func (a *S3Archive) Save(ctx context.Context, key string, data []byte) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", errors.New("storage: clave vacía")
	}
	objectKey := a.prefix + key

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(pdfContentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", objectKey, err)
	}

	location := fmt.Sprintf("s3://%s/%s", a.bucket, objectKey)
	a.log.Debug().Str("location", location).Int("bytes", len(data)).Msg("documento archivado")
	return location, nil
}

// normalizeEndpoint agrega https:// si el endpoint viene sin esquema.
func normalizeEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}
