package chat

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ai-study-buddy/config"
	s3client "ai-study-buddy/pkg/s3"
	"ai-study-buddy/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// archiveDocument keeps a copy of an analyzed upload in S3 under a
// content-addressed key. Best-effort: only runs when a bucket is configured,
// and failures are logged, never surfaced to the caller.
func archiveDocument(data []byte, filename string) {
	bucket := strings.TrimSpace(config.Cfg.S3.Bucket)
	if bucket == "" {
		return
	}

	client, err := s3client.GetClient()
	if err != nil {
		logger.Error(err, "%v: archive client unavailable", config.ModuleS3)
		return
	}

	sum := sha256.Sum256(data)
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("documents/%s%s", hex.EncodeToString(sum[:]), ext)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		logger.Error(err, "%v: archive put object failed (key=%s)", config.ModuleS3, key)
	}
}
