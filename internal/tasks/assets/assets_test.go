package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"me.png":                  "me.png",
		"My Holiday Photo.JPG":    "My_Holiday_Photo.JPG",
		"../../etc/passwd":        "passwd",
		`C:\Users\bob\avatar.gif`: "avatar.gif",
		"..":                      "",
		".hidden.png":             "hidden.png",
		"héllo.png":               "hllo.png",
		"":                        "",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestContentType(t *testing.T) {
	require.Equal(t, "image/jpeg", ContentType("a.JPEG"))
	require.Equal(t, "image/png", ContentType("a.png"))
	require.Equal(t, "image/gif", ContentType("a.gif"))
	require.Equal(t, "application/octet-stream", ContentType("a.bin"))
}

func TestLocalStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	st, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := st.Put(context.Background(), "abc_me.png", strings.NewReader("pixels"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "abc_me.png", ref)

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	require.Equal(t, "pixels", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not linger")

	require.NoError(t, st.Ping(context.Background()))
	require.NoError(t, os.RemoveAll(dir))
	require.Error(t, st.Ping(context.Background()))
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := st.Put(ctx, "abc_me.png", strings.NewReader("pixels"), "image/png")
	require.NoError(t, err)
	require.NoError(t, st.Delete(ctx, ref))

	entries, err := os.ReadDir(st.Dir())
	require.NoError(t, err)
	require.Empty(t, entries)

	require.NoError(t, st.Delete(ctx, ref), "already gone")
	require.ErrorIs(t, st.Delete(ctx, "../abc_me.png"), ErrInvalidName)
}

func TestLocalStoreRejectsUnsafeNames(t *testing.T) {
	st, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../x.png", "a/b.png", ".env"} {
		_, err := st.Put(context.Background(), name, strings.NewReader("x"), "")
		require.ErrorIs(t, err, ErrInvalidName, "name %q", name)

		_, err = st.Path(name)
		require.ErrorIs(t, err, ErrInvalidName)
	}
}

type fakeS3 struct {
	in      *s3.PutObjectInput
	deleted *s3.DeleteObjectInput
	body    []byte
	err     error
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = in
	return &s3.DeleteObjectOutput{}, f.err
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if aws.ToString(in.Bucket) == "" {
		return nil, errors.New("no bucket")
	}
	return &s3.HeadBucketOutput{}, f.err
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

// stubS3 swaps the AWS seams for the duration of the test.
func stubS3(t *testing.T, fake *fakeS3) *s3.Options {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	var opts s3.Options
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		for _, fn := range optFns {
			fn(&opts)
		}
		return fake
	}
	return &opts
}

func TestS3StorePut(t *testing.T) {
	fake := &fakeS3{}
	opts := stubS3(t, fake)

	st, err := NewS3Store(context.Background(), S3Config{
		Bucket:    "avatars",
		Region:    "ap-southeast-2",
		Endpoint:  "http://minio:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	st.now = func() time.Time { return time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC) }

	require.True(t, opts.UsePathStyle)
	require.Equal(t, "http://minio:9000", aws.ToString(opts.BaseEndpoint))

	// A plain io.Reader is buffered before upload.
	ref, err := st.Put(context.Background(), "abc_Me.PNG", io.MultiReader(bytes.NewReader([]byte("pixels"))), "image/png")
	require.NoError(t, err)

	key := aws.ToString(fake.in.Key)
	require.True(t, strings.HasPrefix(key, "profiles/2025/03/07/"), key)
	require.True(t, strings.HasSuffix(key, ".png"), key)
	require.Equal(t, "avatars", aws.ToString(fake.in.Bucket))
	require.Equal(t, "image/png", aws.ToString(fake.in.ContentType))
	require.Equal(t, "pixels", string(fake.body))
	require.Equal(t, "http://minio:9000/avatars/"+key, ref)
	require.NoError(t, st.Ping(context.Background()))

	require.NoError(t, st.Delete(context.Background(), ref))
	require.Equal(t, "avatars", aws.ToString(fake.deleted.Bucket))
	require.Equal(t, key, aws.ToString(fake.deleted.Key))
}

func TestS3StoreDeleteRejectsForeignReferences(t *testing.T) {
	fake := &fakeS3{}
	stubS3(t, fake)
	st, err := NewS3Store(context.Background(), S3Config{Bucket: "b", Region: "us-east-1"})
	require.NoError(t, err)

	for _, ref := range []string{
		"",
		"me.png",
		"https://other.example.com/profiles/2025/03/07/x.png",
	} {
		require.ErrorIs(t, st.Delete(context.Background(), ref), ErrInvalidName, "ref %q", ref)
	}
	require.Nil(t, fake.deleted)
}

func TestS3StoreObjectURL(t *testing.T) {
	st := &S3Store{cfg: S3Config{Bucket: "b", Region: "us-east-1"}}
	require.Equal(t, "https://b.s3.us-east-1.amazonaws.com/profiles/k.png", st.objectURL("profiles/k.png"))

	st.cfg.PublicURL = "https://cdn.example.com/"
	require.Equal(t, "https://cdn.example.com/profiles/k.png", st.objectURL("profiles/k.png"))
}

func TestS3StoreErrors(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	require.Error(t, err)

	fake := &fakeS3{err: errors.New("access denied")}
	stubS3(t, fake)
	st, err := NewS3Store(context.Background(), S3Config{Bucket: "b", Region: "us-east-1"})
	require.NoError(t, err)

	_, err = st.Put(context.Background(), "x.png", strings.NewReader("x"), "image/png")
	require.ErrorContains(t, err, "access denied")
	require.ErrorContains(t, st.Ping(context.Background()), "access denied")
	require.ErrorContains(t, st.Delete(context.Background(), st.objectURL("profiles/k.png")), "access denied")
}

func TestStorageKey(t *testing.T) {
	k1 := StorageKey(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), ".JPG")
	k2 := StorageKey(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), ".JPG")
	require.True(t, strings.HasPrefix(k1, "profiles/2024/12/31/"))
	require.True(t, strings.HasSuffix(k1, ".jpg"))
	require.NotEqual(t, k1, k2)
}
