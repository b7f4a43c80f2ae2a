// Package client implements the HTTP contract of the video search backend:
// presigned upload descriptors, processing job creation and listing, and the
// shot search endpoint.
package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cbsinteractive/video-search-client/auth"
	"github.com/sirupsen/logrus"
)

// DescriptorKind selects what a presigned descriptor request is for.
type DescriptorKind string

const (
	// KindPost requests a descriptor for uploading a video into the catalog.
	KindPost = DescriptorKind("post")
	// KindClipSearch requests a descriptor for uploading a query clip.
	KindClipSearch = DescriptorKind("clipsearch")
)

// Client exposes the operations of the video search backend.
type Client interface {
	UploadDescriptor(ctx context.Context, kind DescriptorKind, objectName string) (UploadDescriptor, error)
	PlaybackURL(ctx context.Context, objectName string) (string, error)

	CreateJob(ctx context.Context, userID, videoName string) (CreateJobResponse, error)
	AllJobs(ctx context.Context) ([]JobListing, error)

	SearchText(ctx context.Context, index, query string) ([]SearchHit, error)
	SearchImage(ctx context.Context, index, dataURL string) ([]SearchHit, error)
	SearchClip(ctx context.Context, index, objectName string) ([]SearchHit, error)
}

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "http://localhost:8080"
)

// DefaultClient talks to the backend over plain HTTP, attaching a bearer
// token from Tokens when one is available.
type DefaultClient struct {
	BaseURL *url.URL
	Client  *http.Client
	Tokens  auth.TokenSource
	Log     *logrus.Logger
}

// UploadDescriptor fetches a single-use presigned POST descriptor for the
// named object. Descriptors are never cached; every upload attempt requests
// a fresh one.
func (c *DefaultClient) UploadDescriptor(ctx context.Context, kind DescriptorKind, objectName string) (UploadDescriptor, error) {
	c.ensure()

	var desc UploadDescriptor
	q := url.Values{"type": {string(kind)}, "object_name": {objectName}}
	err := c.getResource(ctx, &desc, "/presignedurl_video?"+q.Encode())
	if err != nil {
		return UploadDescriptor{}, err
	}

	return desc, nil
}

// PlaybackURL resolves a ready-to-use playback URL for a stored video.
func (c *DefaultClient) PlaybackURL(ctx context.Context, objectName string) (string, error) {
	c.ensure()

	q := url.Values{"type": {"get"}, "object_name": {objectName}}
	return c.getString(ctx, "/presignedurl_video?"+q.Encode())
}

// CreateJob asks the backend to start processing an already-uploaded video.
func (c *DefaultClient) CreateJob(ctx context.Context, userID, videoName string) (CreateJobResponse, error) {
	c.ensure()

	var resp CreateJobResponse
	q := url.Values{"userId": {userID}, "video_name": {videoName}}
	err := c.getResource(ctx, &resp, "/create_job?"+q.Encode())
	if err != nil {
		return CreateJobResponse{}, err
	}

	return resp, nil
}

// AllJobs returns every processing job known to the backend, in no
// particular order.
func (c *DefaultClient) AllJobs(ctx context.Context) ([]JobListing, error) {
	c.ensure()

	var jobs []JobListing
	err := c.getResource(ctx, &jobs, "/get_all_jobs")
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// SearchText runs a free-text shot search against the given index.
func (c *DefaultClient) SearchText(ctx context.Context, index, query string) ([]SearchHit, error) {
	return c.searchGet(ctx, "text", index, query)
}

// SearchClip searches for shots similar to a previously uploaded query clip,
// identified by its object name.
func (c *DefaultClient) SearchClip(ctx context.Context, index, objectName string) ([]SearchHit, error) {
	return c.searchGet(ctx, "clip", index, objectName)
}

// SearchImage searches for shots similar to a still image. The query is a
// base64 data URL of the image contents.
func (c *DefaultClient) SearchImage(ctx context.Context, index, dataURL string) ([]SearchHit, error) {
	c.ensure()

	var hits []SearchHit
	req := searchRequest{Type: "image", Index: index, Query: dataURL}
	err := c.postResource(ctx, req, &hits, "/search")
	if err != nil {
		return nil, err
	}

	return hits, nil
}

func (c *DefaultClient) searchGet(ctx context.Context, kind, index, query string) ([]SearchHit, error) {
	c.ensure()

	var hits []SearchHit
	q := url.Values{"type": {kind}, "index": {index}, "query": {query}}
	err := c.getResource(ctx, &hits, "/search?"+q.Encode())
	if err != nil {
		return nil, err
	}

	return hits, nil
}

func (c *DefaultClient) ensure() {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}

	if c.BaseURL == nil {
		c.BaseURL = urlMust(url.Parse(defaultBaseURL))
	}

	if c.Tokens == nil {
		c.Tokens = auth.None()
	}
}

func urlMust(u *url.URL, _ error) *url.URL { return u }
