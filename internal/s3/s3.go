// Package s3 is a thin convenience wrapper over the AWS S3 API for the
// bulk pull/push patterns the toolbox uses: fetch one object, mirror a
// prefix down, or push a local directory up.
package s3

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/schollz/progressbar/v3"
)

// Client wraps the S3 API with directory-level helpers.
type Client struct {
	api        *s3.Client
	downloader *manager.Downloader
	uploader   *manager.Uploader
}

// NewClient builds a client from the ambient AWS configuration (shared
// config files, environment, instance role).
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	api := s3.NewFromConfig(cfg)
	return &Client{
		api:        api,
		downloader: manager.NewDownloader(api),
		uploader:   manager.NewUploader(api),
	}, nil
}

// SplitPath splits an "s3://bucket/key" path into bucket and key.
func SplitPath(s3Path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(s3Path, "s3://")
	if trimmed == s3Path {
		return "", "", fmt.Errorf("not an s3 path: %q", s3Path)
	}
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" {
		return "", "", fmt.Errorf("malformed s3 path: %q", s3Path)
	}
	return bucket, key, nil
}

// PullFile downloads one object to localDir and returns the local path.
func (c *Client) PullFile(ctx context.Context, s3Path, localDir string) (string, error) {
	bucket, key, err := SplitPath(s3Path)
	if err != nil {
		return "", err
	}
	localPath := filepath.Join(localDir, filepath.Base(key))

	f, err := os.Create(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	slog.Info("pulling file", slog.String("from", s3Path), slog.String("to", localPath))
	if _, err := c.downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return "", fmt.Errorf("downloading %s: %w", s3Path, err)
	}
	return localPath, nil
}

// PullPrefix downloads every object under an "s3://bucket/prefix" path
// to localDir, flattening nested keys to their base names, and returns
// the local paths.
func (c *Client) PullPrefix(ctx context.Context, s3Dir, localDir string) ([]string, error) {
	bucket, prefix, err := SplitPath(s3Dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", s3Dir, err)
		}
		for _, obj := range page.Contents {
			if !strings.HasSuffix(*obj.Key, "/") {
				keys = append(keys, *obj.Key)
			}
		}
	}

	slog.Info("pulling prefix", slog.String("from", s3Dir), slog.Int("objects", len(keys)))
	bar := progressbar.Default(int64(len(keys)), "pull")
	var outputs []string
	for _, key := range keys {
		local, err := c.PullFile(ctx, "s3://"+bucket+"/"+key, localDir)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, local)
		_ = bar.Add(1)
	}
	return outputs, nil
}

// PushOptions filter which files a directory push includes.
type PushOptions struct {
	IgnoreExts []string // extensions to skip, e.g. ".pkl"
}

// PushDir uploads every file directly under localDir to bucket/s3Dir,
// skipping .DS_Store and any ignored extensions.
func (c *Client) PushDir(ctx context.Context, localDir, bucket, s3Dir string, opts PushOptions) error {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || ignored(entry.Name(), opts) {
			continue
		}
		files = append(files, entry.Name())
	}

	slog.Info("pushing directory", slog.String("from", localDir),
		slog.String("to", "s3://"+bucket+"/"+s3Dir), slog.Int("files", len(files)))
	bar := progressbar.Default(int64(len(files)), "push")
	for _, name := range files {
		if err := c.PushFile(ctx, filepath.Join(localDir, name), bucket, s3Dir); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

// PushFile uploads one local file to bucket/s3Dir/<basename>.
func (c *Client) PushFile(ctx context.Context, localFile, bucket, s3Dir string) error {
	f, err := os.Open(localFile)
	if err != nil {
		return err
	}
	defer f.Close()

	key := s3Dir + "/" + filepath.Base(localFile)
	if _, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return fmt.Errorf("uploading %s to s3://%s/%s: %w", localFile, bucket, key, err)
	}
	return nil
}

func ignored(name string, opts PushOptions) bool {
	if name == ".DS_Store" {
		return true
	}
	ext := filepath.Ext(name)
	for _, skip := range opts.IgnoreExts {
		if ext == skip {
			return true
		}
	}
	return false
}
