package storage

import (
	"bytes"
	"context"
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// S3Provider keeps each sheet as a CSV object in an S3-compatible bucket (AWS or B2).
type S3Provider struct {
	api    s3iface.S3API
	bucket string
	prefix string
}

// S3Options carries the connection settings of an S3-compatible endpoint.
type S3Options struct {
	KeyID    string
	AppKey   string
	Endpoint string
	Region   string
	Bucket   string
	Prefix   string
}

func NewS3Provider(opts S3Options) (*S3Provider, error) {
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(opts.KeyID, opts.AppKey, ""),
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		s3Config.Endpoint = aws.String(opts.Endpoint)
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, err
	}
	return &S3Provider{api: s3.New(sess), bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

func (s *S3Provider) key(sheet string) string {
	return s.prefix + sheet + ".csv"
}

func (s *S3Provider) Read(ctx context.Context, sheet string) (models.Table, error) {
	out, err := s.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sheet)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return models.Table{}, nil
		}
		return models.Table{}, err
	}
	defer out.Body.Close()

	return decodeCSV(out.Body)
}

func (s *S3Provider) Write(ctx context.Context, sheet string, table models.Table) error {
	var buf bytes.Buffer
	if err := encodeCSV(&buf, table); err != nil {
		return err
	}
	_, err := s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(s.key(sheet)),
		Body:         bytes.NewReader(buf.Bytes()),
		ContentType:  aws.String("text/csv; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
	})
	return err
}
