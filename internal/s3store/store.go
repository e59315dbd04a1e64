// Package s3store keeps rendered receipts in an S3 bucket, with mutable
// side-metadata attached to each object.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/port"
)

const contentTypePDF = "application/pdf"

type store struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

func New(client *s3.Client, bucket string) port.ArtifactStore {
	return &store{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
}

func (s *store) Put(ctx context.Context, key string, pdf []byte) error {
	if s.bucket == "" {
		return domain.ErrStoreUnavailable
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String(contentTypePDF),
		Metadata: map[string]string{
			port.MetaHoraEnvio:      s.now().UTC().Format(time.RFC3339),
			port.MetaNotaDescargada: "false",
			port.MetaVecesEnviado:   "1",
		},
	})
	if err != nil {
		return fmt.Errorf("client.PutObject: %w", err)
	}

	return nil
}

func (s *store) Metadata(ctx context.Context, key string) (map[string]string, error) {
	if s.bucket == "" {
		return nil, domain.ErrStoreUnavailable
	}

	resp, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("client.HeadObject: %w", err)
	}

	return resp.Metadata, nil
}

// ReplaceMetadata rewrites the object's metadata in place without touching
// its bytes, via a same-key copy with the REPLACE directive.
func (s *store) ReplaceMetadata(ctx context.Context, key string, metadata map[string]string) error {
	if s.bucket == "" {
		return domain.ErrStoreUnavailable
	}

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(s.bucket),
		Key:               aws.String(key),
		CopySource:        aws.String(url.PathEscape(s.bucket + "/" + key)),
		Metadata:          metadata,
		MetadataDirective: types.MetadataDirectiveReplace,
		ContentType:       aws.String(contentTypePDF),
	})
	if err != nil {
		return fmt.Errorf("client.CopyObject: %w", err)
	}

	return nil
}

func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.bucket == "" {
		return nil, domain.ErrStoreUnavailable
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("client.GetObject: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return data, nil
}
