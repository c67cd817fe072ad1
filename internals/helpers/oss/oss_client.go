package oss

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/rs/zerolog/log"

	"erp_backend/internals/configs"
)

// OSSStore saves blobs into an Aliyun OSS bucket.
type OSSStore struct {
	Client     *alioss.Client
	Bucket     *alioss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads"
}

func NewOSSStoreFromEnv(prefix string) (*OSSStore, error) {
	endpoint := configs.GetEnv("ALI_OSS_ENDPOINT")
	ak := configs.GetEnv("ALI_OSS_ACCESS_KEY")
	sk := configs.GetEnv("ALI_OSS_SECRET_KEY")
	sts := configs.GetEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := configs.GetEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *alioss.Client
		err    error
	)
	if sts != "" {
		client, err = alioss.New(endpoint, ak, sk, alioss.SecurityToken(sts))
	} else {
		client, err = alioss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(alioss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Warn().Str("bucket", bucketName).Msg("[OSS] skip location check due to AccessDenied")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Info().Str("bucket", bucketName).Str("location", loc).Msg("[OSS] bucket ready")
	}

	return &OSSStore{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSStore) key(storedPath string) string {
	if s.Prefix == "" {
		return storedPath
	}
	return s.Prefix + "/" + strings.TrimPrefix(storedPath, "/")
}

// Save uploads data and returns the path relative to Prefix.
func (s *OSSStore) Save(ctx context.Context, dir, filename string, data []byte, contentType string) (string, error) {
	name := ObjectName(dir, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType(contentType),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(s.key(name), bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("oss put %s: %w", name, err)
	}
	return name, nil
}

func (s *OSSStore) Delete(ctx context.Context, storedPath string) error {
	err := s.Bucket.DeleteObject(s.key(storedPath), alioss.WithContext(ctx))
	if isNotFound(err) {
		return nil
	}
	return err
}

func (s *OSSStore) PublicURL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	if base := configs.GetEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + s.key(storedPath)
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, s.key(storedPath))
}

func isNotFound(err error) bool {
	if e, ok := err.(alioss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}
