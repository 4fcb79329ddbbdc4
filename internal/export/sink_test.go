package export

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestSpacesSink_PutUsesCDN(t *testing.T) {
	client := &fakeS3{}
	sink := newSpacesSink(client, "https://nyc3.digitaloceanspaces.com", "cards", "https://cdn.example.com/")

	locs, err := sink.Put(context.Background(), "stream-schedule-a-to-b.png", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(locs) != 1 || locs[0] != "https://cdn.example.com/schedules/stream-schedule-a-to-b.png" {
		t.Fatalf("locations = %v", locs)
	}
	in := client.input
	if aws.StringValue(in.Bucket) != "cards" || aws.StringValue(in.Key) != "schedules/stream-schedule-a-to-b.png" {
		t.Fatalf("input = %v", in)
	}
	if aws.StringValue(in.ACL) != "public-read" || aws.StringValue(in.ContentType) != "image/png" {
		t.Fatalf("ACL/ContentType = %s/%s", aws.StringValue(in.ACL), aws.StringValue(in.ContentType))
	}
	if string(client.body) != "data" {
		t.Fatalf("body = %q", client.body)
	}
}

func TestSpacesSink_URLWithoutCDN(t *testing.T) {
	sink := newSpacesSink(&fakeS3{}, "https://ams3.digitaloceanspaces.com", "cards", "")
	locs, err := sink.Put(context.Background(), "x.jpeg", "image/jpeg", nil)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if locs[0] != "https://cards.ams3.digitaloceanspaces.com/schedules/x.jpeg" {
		t.Fatalf("location = %s", locs[0])
	}
}

func TestMultiSink_JoinsErrors(t *testing.T) {
	failing := newSpacesSink(&fakeS3{err: errors.New("denied")}, "https://e", "b", "")
	mem := &memSink{}

	locs, err := MultiSink{mem, failing}.Put(context.Background(), "f.png", "image/png", []byte("x"))
	if err == nil {
		t.Fatal("MultiSink error = nil, want upload failure")
	}
	if len(locs) != 1 || locs[0] != "mem://f.png" {
		t.Fatalf("locations = %v", locs)
	}
	if string(mem.data) != "x" {
		t.Fatal("first sink not written")
	}
}
