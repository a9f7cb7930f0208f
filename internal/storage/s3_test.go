package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// fakeS3 keeps objects in memory. Only the calls the provider makes are implemented.
type fakeS3 struct {
	s3iface.S3API
	objects     map[string][]byte
	contentType string
}

func (f *fakeS3) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)] = body
	f.contentType = aws.StringValue(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ProviderRoundTrip(t *testing.T) {
	api := &fakeS3{objects: map[string][]byte{}}
	p := &S3Provider{api: api, bucket: "board", prefix: "sheets/"}
	ctx := context.Background()

	table, err := p.Read(ctx, "Marketing_Schedule")
	if err != nil {
		t.Fatalf("Missing object should read as an empty sheet, got %v", err)
	}
	if !table.IsEmpty() {
		t.Errorf("Expected empty table, got %+v", table)
	}

	in := models.Table{
		Columns: []string{models.ColKind, models.ColName},
		Rows:    []map[string]string{{models.ColKind: "常態", models.ColName: "每日限動"}},
	}
	if err := p.Write(ctx, "Marketing_Schedule", in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, ok := api.objects["board/sheets/Marketing_Schedule.csv"]; !ok {
		t.Errorf("Object stored under unexpected key: %v", api.objects)
	}
	if api.contentType != "text/csv; charset=utf-8" {
		t.Errorf("ContentType: Got %q", api.contentType)
	}

	out, err := p.Read(ctx, "Marketing_Schedule")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(out.Rows) != 1 || out.Rows[0][models.ColName] != "每日限動" {
		t.Errorf("Round trip mismatch: %+v", out)
	}
}
