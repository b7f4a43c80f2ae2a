// Package upload performs direct-to-storage uploads against presigned POST
// descriptors minted by the video search backend, reporting byte-level
// progress as the transport drains the request body.
package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Minute

// Storage expects the policy fields in this order, ahead of the file part.
var fieldOrder = []string{"key", "AWSAccessKeyId", "x-amz-security-token", "policy", "signature"}

// ProgressFunc receives the cumulative fraction (0..1) of the request body
// sent so far. Calls are monotonically non-decreasing for a single upload.
type ProgressFunc func(fraction float64)

// Uploader posts files to presigned storage URLs.
type Uploader struct {
	Client *http.Client
	Log    *logrus.Logger
}

// Upload builds a multipart body from the descriptor's fields plus the file
// contents and posts it to the descriptor's URL. Storage answers 204 on
// success; anything else is a hard failure for this file. Descriptors are
// single-use, so there is no retry here.
func (u *Uploader) Upload(ctx context.Context, desc client.UploadDescriptor, file File, onProgress ProgressFunc) error {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	for _, name := range orderedFields(desc.Fields) {
		if err := w.WriteField(name, desc.Fields[name]); err != nil {
			return errors.Wrap(err, "writing policy field")
		}
	}

	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return errors.Wrap(err, "creating file part")
	}
	if _, err = part.Write(file.Contents); err != nil {
		return errors.Wrap(err, "writing file contents")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "finalizing multipart body")
	}

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, desc.URL, &progressReader{
		r:     body,
		total: total,
		fn:    onProgress,
	})
	if err != nil {
		return errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.ContentLength = total

	resp, err := u.httpClient().Do(req)
	if err != nil {
		return errors.Wrap(err, "posting to storage")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return errors.Errorf("storage rejected upload of %q: status %d", file.Name, resp.StatusCode)
	}

	if u.Log != nil {
		u.Log.WithFields(logrus.Fields{"object": file.Name, "bytes": len(file.Contents)}).Debug("upload complete")
	}
	return nil
}

// orderedFields returns the descriptor field names with the well-known
// policy fields first, in their expected order, and anything else after in a
// stable order.
func orderedFields(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	seen := map[string]bool{}
	for _, name := range fieldOrder {
		if _, ok := fields[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range fields {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (u *Uploader) httpClient() *http.Client {
	if u.Client != nil {
		return u.Client
	}
	return &http.Client{Timeout: defaultTimeout}
}

// progressReader reports cumulative bytes handed to the transport. The
// fraction can only grow, which keeps downstream aggregates monotonic.
type progressReader struct {
	r     io.Reader
	total int64
	fn    ProgressFunc

	mu   sync.Mutex
	sent int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.fn != nil && p.total > 0 {
		p.mu.Lock()
		p.sent += int64(n)
		fraction := float64(p.sent) / float64(p.total)
		p.mu.Unlock()
		p.fn(fraction)
	}
	return n, err
}
