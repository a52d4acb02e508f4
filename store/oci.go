package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"

	"objbench/config"
	"objbench/logging"
)

// OCIStore implements Store against an OCI Object Storage bucket. The
// underlying client is safe for concurrent use, so one store serves every
// worker.
type OCIStore struct {
	client     objectstorage.ObjectStorageClient
	httpClient *http.Client
	namespace  string
	bucket     string
}

// NewOCIStore loads OCI credentials, builds an HTTP/2-enabled client, and
// resolves the namespace unless the config overrides it.
func NewOCIStore(svc config.Service) (*OCIStore, error) {
	provider, err := config.LoadOCIConfig(svc.ConfigFile)
	if err != nil {
		return nil, err
	}

	client, err := objectstorage.NewObjectStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("building object storage client: %w", err)
	}

	httpClient, err := newHTTPClient()
	if err != nil {
		return nil, err
	}
	client.HTTPClient = httpClient

	if svc.Host != "" {
		logging.Infof("using custom host: %s", svc.Host)
		client.Host = svc.Host
	}

	namespace := svc.Namespace
	if namespace == "" {
		resp, err := client.GetNamespace(context.Background(), objectstorage.GetNamespaceRequest{})
		if err != nil {
			return nil, fmt.Errorf("fetching namespace: %w", err)
		}
		namespace = *resp.Value
		logging.Debugf("fetched namespace: %s", namespace)
	}

	return &OCIStore{
		client:     client,
		httpClient: httpClient,
		namespace:  namespace,
		bucket:     svc.Bucket,
	}, nil
}

// Read fetches the object and drains its body, returning the bytes received.
func (o *OCIStore) Read(ctx context.Context, key string) (int64, error) {
	resp, err := o.client.GetObject(ctx, objectstorage.GetObjectRequest{
		NamespaceName: common.String(o.namespace),
		BucketName:    common.String(o.bucket),
		ObjectName:    common.String(key),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Content.Close()

	buf := getBuffer()
	defer putBuffer(buf)
	return io.CopyBuffer(io.Discard, resp.Content, *buf)
}

// Write uploads the payload in one PutObject call.
func (o *OCIStore) Write(ctx context.Context, key string, payload []byte) (int64, error) {
	_, err := o.client.PutObject(ctx, objectstorage.PutObjectRequest{
		NamespaceName: common.String(o.namespace),
		BucketName:    common.String(o.bucket),
		ObjectName:    common.String(key),
		ContentLength: common.Int64(int64(len(payload))),
		PutObjectBody: io.NopCloser(bytes.NewReader(payload)),
	})
	if err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

// Close drops idle transport connections.
func (o *OCIStore) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}
