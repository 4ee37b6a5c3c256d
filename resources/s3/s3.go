// Package s3 fetches band resources stored as a single object in an
// S3-compatible bucket (AWS S3 or MinIO). The object may be a YAML or JSON
// resource file or a compiled pack; its key's extension decides which.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/bandbook/resources/file"
	"github.com/dekarrin/bandbook/resources/pack"
)

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Config locates the resource object.
type Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string // optional; if set enables custom endpoint (e.g. MinIO)
	PathStyle bool
}

// getObjectAPI is the part of *s3.Client that Fetch uses.
type getObjectAPI interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Fetch downloads and decodes the configured object. Credentials come from the
// default AWS credentials chain.
func Fetch(ctx context.Context, cfg Config) (bandbook.Resources, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("s3 object key required")
	}
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return fetch(ctx, client, cfg.Bucket, cfg.Key)
}

func fetch(ctx context.Context, api getObjectAPI, bucket, key string) (bandbook.Resources, error) {
	decode, err := decoderFor(key)
	if err != nil {
		return nil, err
	}

	out, err := api.GetObject(ctx, &awss3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, bandbook.NewError(fmt.Sprintf("s3://%s/%s", bucket, key), bandbook.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: read body: %w", bucket, key, err)
	}

	res, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
	}
	return res, nil
}

func decoderFor(key string) (func([]byte) (bandbook.Resources, error), error) {
	if strings.HasSuffix(strings.ToLower(key), pack.Ext) {
		return pack.Decode, nil
	}

	f := bandbook.DetectFormat(key)
	if f == bandbook.NoFormat {
		return nil, fmt.Errorf("%s: incompatible format; must be a %s, or %s file", key, bandbook.FormatList(), pack.Ext)
	}
	return func(data []byte) (bandbook.Resources, error) {
		return file.Decode(data, f)
	}, nil
}
