package loader

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// maxDocumentSize caps remote field forests and base documents.
const maxDocumentSize = 32 << 20

// fetchAccept lists the encodings fields.Decode and jsonschema.Parse read.
const fetchAccept = "application/json, application/yaml;q=0.9, text/yaml;q=0.8"

func loadHTTP(ctx context.Context, client *http.Client, location string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("http client is not configured")
	}
	if location == "" {
		return nil, errors.New("url is required")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", fetchAccept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if len(data) > maxDocumentSize {
		return nil, errors.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}
