// Package publish uploads rendered maps to S3-compatible object storage
// (AWS S3, MinIO).
//
// Destinations are written as s3://bucket/prefix. Connection settings come
// from the standard AWS credential chain plus:
//
//	FEATUREMAP_S3_REGION=<region>        (default us-east-1)
//	FEATUREMAP_S3_ENDPOINT=<url>         (optional, for MinIO)
//	FEATUREMAP_S3_PATH_STYLE=true|false  (default false)
package publish

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/render/sink"
)

// DefaultRegion is used when neither the config nor the environment names one.
const DefaultRegion = "us-east-1"

// Config describes an upload destination.
type Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // optional; enables a custom endpoint such as MinIO
	PathStyle bool
}

// ParseURL parses an s3://bucket/prefix destination.
func ParseURL(raw string) (Config, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "invalid upload destination %q (want s3://bucket/prefix)", raw)
	}
	return Config{Bucket: u.Host, Prefix: strings.Trim(u.Path, "/")}, nil
}

// WithEnv fills unset connection fields from FEATUREMAP_S3_* variables.
func (c Config) WithEnv() Config {
	if c.Region == "" {
		c.Region = os.Getenv("FEATUREMAP_S3_REGION")
	}
	if c.Endpoint == "" {
		c.Endpoint = os.Getenv("FEATUREMAP_S3_ENDPOINT")
	}
	if !c.PathStyle {
		c.PathStyle = strings.EqualFold(os.Getenv("FEATUREMAP_S3_PATH_STYLE"), "true")
	}
	return c
}

// Publisher uploads artifacts to one bucket and prefix.
type Publisher struct {
	client *s3.Client
	bucket string
	prefix string
	logger *log.Logger
}

// New creates a publisher from cfg using the default AWS credential chain.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newPublisher(client, cfg, logger), nil
}

func newPublisher(client *s3.Client, cfg Config, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, logger: logger}
}

// Key returns the object key for an artifact of the named map.
func (p *Publisher) Key(name, format string) string {
	return path.Join(p.prefix, name+"."+format)
}

// Upload writes every artifact as <prefix>/<name>.<format> and returns the
// uploaded s3:// URLs in format order.
func (p *Publisher) Upload(ctx context.Context, name string, artifacts map[string][]byte) ([]string, error) {
	if err := errors.ValidateRecordName(name); err != nil {
		return nil, err
	}
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	urls := make([]string, 0, len(formats))
	for _, format := range formats {
		data := artifacts[format]
		key := p.Key(name, format)
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(sink.Format(format).ContentType()),
		})
		if err != nil {
			return urls, errors.Wrap(errors.ErrCodeNetwork, err, "upload %s", key)
		}
		u := fmt.Sprintf("s3://%s/%s", p.bucket, key)
		p.logger.Info("uploaded", "url", u, "bytes", len(data))
		urls = append(urls, u)
	}
	return urls, nil
}
