// Package archive provides listers for the public satellite imagery archives.
package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Lister implements ArchiveLister for the NOAA Open Data buckets on AWS.
// The buckets are public, so all requests are made anonymously.
type S3Lister struct {
	client *s3.Client
}

// S3Config holds S3 archive configuration.
type S3Config struct {
	Region   string
	Endpoint string // override for testing
}

// NewS3Lister creates a new S3 archive lister.
func NewS3Lister(ctx context.Context, cfg S3Config) (*S3Lister, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, err
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Lister{client: s3.NewFromConfig(awsCfg, clientOpts...)}, nil
}

// List returns the object keys under the given prefix. The first prefix
// segment is the bucket (the satellite id); returned keys include it again,
// matching the archive's satellite/product/... addressing. S3 lists keys in
// lexicographic order, which callers rely on.
func (l *S3Lister) List(ctx context.Context, prefix string) ([]string, error) {
	bucket, rest, err := SplitPrefix(prefix)
	if err != nil {
		return nil, err
	}

	var keys []string

	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(rest),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, bucket+"/"+aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

// SplitPrefix splits an archive prefix into its bucket (satellite) segment
// and the in-bucket remainder.
func SplitPrefix(prefix string) (bucket, rest string, err error) {
	bucket, rest, ok := strings.Cut(prefix, "/")
	if !ok || bucket == "" {
		return "", "", fmt.Errorf("malformed archive prefix %q", prefix)
	}
	return bucket, rest, nil
}
