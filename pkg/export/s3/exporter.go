// Package s3 uploads dashboard reports to an S3 bucket as JSON.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/rate-atlas/pkg/adapters"
	"github.com/de-tools/rate-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const keyTimeLayout = "20060102T150405Z"

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

type Settings struct {
	Bucket  string
	Prefix  string
	Region  string
	Profile string
}

type Exporter struct {
	client   PutObjectAPI
	settings Settings
}

func NewExporter(ctx context.Context, settings Settings) (*Exporter, error) {
	awsCfg, err := LoadConfig(ctx, settings.Profile, settings.Region)
	if err != nil {
		return nil, err
	}
	return NewExporterWithClient(awss3.NewFromConfig(*awsCfg), settings)
}

func NewExporterWithClient(client PutObjectAPI, settings Settings) (*Exporter, error) {
	if settings.Bucket == "" {
		return nil, fmt.Errorf("export bucket is required")
	}
	return &Exporter{client: client, settings: settings}, nil
}

// Key returns the object key a report is stored under.
func (e *Exporter) Key(report *domain.Report) string {
	name := fmt.Sprintf("rate-atlas-%s.json", report.GeneratedAt.UTC().Format(keyTimeLayout))
	return path.Join(e.settings.Prefix, name)
}

// Export uploads report and returns its s3:// URI.
func (e *Exporter) Export(ctx context.Context, report *domain.Report) (string, error) {
	body, err := json.MarshalIndent(adapters.MapReportDomainToApi(*report), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := e.Key(report)
	_, err = e.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(e.settings.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to %s: %w", e.settings.Bucket, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", e.settings.Bucket, key)
	zerolog.Ctx(ctx).Info().Str("uri", uri).Int("bytes", len(body)).Msg("report exported")
	return uri, nil
}
