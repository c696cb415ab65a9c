// Package s3store keeps the store snapshot as one JSON object in an
// S3-compatible bucket (AWS S3, MinIO).
package s3store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/timekeeper/internal/cryptox"
	"github.com/dmitrijs2005/timekeeper/internal/models"
)

// ObjectAPI is the part of *s3.Client the persister calls.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options describe the bucket connection. A non-empty Passphrase seals the
// object with cryptox.
type Options struct {
	Bucket       string
	Key          string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Passphrase   string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Persister struct {
	client     ObjectAPI
	bucket     string
	key        string
	passphrase []byte
}

// Open builds an S3 client from opts. Static credentials are used when an
// access key is given; otherwise the default AWS credential chain applies.
func Open(ctx context.Context, opts Options) (*Persister, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	p := New(client, opts.Bucket, opts.Key)
	if opts.Passphrase != "" {
		p.passphrase = []byte(opts.Passphrase)
	}
	return p, nil
}

func New(client ObjectAPI, bucket, key string) *Persister {
	return &Persister{client: client, bucket: bucket, key: key}
}

// Load fetches and decodes the object. A missing object yields an empty
// snapshot.
func (p *Persister) Load(ctx context.Context) (models.Snapshot, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if isNotFound(err) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("get s3://%s/%s: %w", p.bucket, p.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read s3://%s/%s: %w", p.bucket, p.key, err)
	}
	if len(data) == 0 {
		return models.Snapshot{}, nil
	}
	if data, err = cryptox.Open(data, p.passphrase); err != nil {
		return models.Snapshot{}, fmt.Errorf("open s3://%s/%s: %w", p.bucket, p.key, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode s3://%s/%s: %w", p.bucket, p.key, err)
	}
	return snap, nil
}

// Save uploads the whole snapshot, replacing the previous object.
func (p *Persister) Save(ctx context.Context, snapshot models.Snapshot) error {
	if snapshot.Users == nil {
		snapshot.Users = []models.User{}
	}
	if snapshot.TimeEntries == nil {
		snapshot.TimeEntries = []models.TimeEntry{}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if p.passphrase != nil {
		if data, err = cryptox.Seal(data, p.passphrase); err != nil {
			return fmt.Errorf("seal snapshot: %w", err)
		}
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", p.bucket, p.key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
