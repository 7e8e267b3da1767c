package dispatch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Archiver struct {
	client PutObjectAPI
	bucket string
	newID  func() string
}

// NewS3Archiver stores every rendered report in bucket. Archiving counts as
// delivery so it can run alone or next to email in a fan-out.
func NewS3Archiver(client PutObjectAPI, bucket string) (Dispatcher, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is empty")
	}
	return &s3Archiver{
		client: client,
		bucket: bucket,
		newID:  func() string { return uuid.New().String() },
	}, nil
}

func (a *s3Archiver) Dispatch(ctx context.Context, msg domain.ReportMessage) (Result, error) {
	key := ArchiveKey(msg, a.newID())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(msg.HTML)),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"subject": msg.Subject,
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to archive report to s3://%s/%s: %w", a.bucket, key, err)
	}

	zerolog.Ctx(ctx).Debug().Str("bucket", a.bucket).Str("key", key).Msg("report archived")
	return Result{Delivered: true}, nil
}

// ArchiveKey is reports/<kind>/<yyyy-mm-dd>-<id>.html, dated by generation time.
func ArchiveKey(msg domain.ReportMessage, id string) string {
	return fmt.Sprintf("reports/%s/%s-%s.html", msg.Kind, msg.GeneratedAt.Format("2006-01-02"), id)
}
