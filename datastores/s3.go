package datastores

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/metrics"
)

var s3clients = &sync.Map{}

type s3 struct {
	client        *minio.Client
	storageClass  string
	bucket        string
	publicBaseUrl string
}

func resetS3Clients() {
	s3clients = &sync.Map{}
}

func getS3(ds config.DatastoreConfig) (*s3, error) {
	endpoint := ds.Options["endpoint"]
	bucket := ds.Options["bucketName"]
	accessKeyId := ds.Options["accessKeyId"]
	accessSecret := ds.Options["accessSecret"]
	region := ds.Options["region"]
	storageClass, hasStorageClass := ds.Options["storageClass"]
	useSslStr, hasSsl := ds.Options["ssl"]
	publicBaseUrl := ds.Options["publicBaseUrl"]

	if endpoint == "" || bucket == "" {
		return nil, errors.Wrap(common.ErrInvalidConfig, "s3 datastore requires endpoint and bucketName")
	}
	// Uploads bypass bucket policies, so they need the privileged key pair.
	if accessKeyId == "" || accessSecret == "" {
		return nil, errors.Wrap(common.ErrMissingCredentials, "s3 datastore requires accessKeyId and accessSecret")
	}

	cacheKey := strings.Join([]string{endpoint, bucket, accessKeyId}, "|")
	if val, ok := s3clients.Load(cacheKey); ok {
		return val.(*s3), nil
	}

	if !hasStorageClass || storageClass == "" {
		storageClass = "STANDARD"
	}

	useSsl := true
	if hasSsl && useSslStr != "" {
		var err error
		useSsl, err = strconv.ParseBool(useSslStr)
		if err != nil {
			return nil, errors.Wrapf(common.ErrInvalidConfig, "ssl option %q", useSslStr)
		}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Region: region,
		Secure: useSsl,
		Creds:  credentials.NewStaticV4(accessKeyId, accessSecret, ""),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating s3 client")
	}

	s3c := &s3{
		client:        client,
		storageClass:  storageClass,
		bucket:        bucket,
		publicBaseUrl: publicBaseUrl,
	}
	s3clients.Store(cacheKey, s3c)
	return s3c, nil
}

func (s *s3) Upload(ctx rcontext.RequestContext, key string, data io.Reader, size int64, opts UploadOptions) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	metrics.StorageOperations.With(prometheus.Labels{"backend": "s3", "operation": "PutObject"}).Inc()
	// PutObject replaces existing objects, which is the overwrite behaviour we want.
	info, err := s.client.PutObject(ctx.Context, s.bucket, key, data, size, minio.PutObjectOptions{
		StorageClass: s.storageClass,
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
	})
	if err != nil {
		return "", err
	}

	ctx.Log.WithFields(logrus.Fields{"bucket": info.Bucket, "etag": info.ETag}).Debugf("Uploaded %d bytes to %s", info.Size, key)
	return key, nil
}

func (s *s3) PublicUrl(location string) string {
	if s.publicBaseUrl != "" {
		return joinUrl(s.publicBaseUrl, location)
	}
	return joinUrl(s.client.EndpointURL().String()+"/"+s.bucket, location)
}

func (s *s3) EnsureBucketExists(ctx rcontext.RequestContext) error {
	metrics.StorageOperations.With(prometheus.Labels{"backend": "s3", "operation": "BucketExists"}).Inc()
	found, err := s.client.BucketExists(ctx.Context, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("bucket %s not found", s.bucket)
	}
	return nil
}
