package test

import (
	"context"
	"sync"

	"github.com/cbsinteractive/video-search-client/client"
)

// FakeAPI is a configurable stand-in for client.Client. Unset hooks return
// zero values. Every call is recorded by operation name.
type FakeAPI struct {
	UploadDescriptorFn func(ctx context.Context, kind client.DescriptorKind, objectName string) (client.UploadDescriptor, error)
	PlaybackURLFn      func(ctx context.Context, objectName string) (string, error)
	CreateJobFn        func(ctx context.Context, userID, videoName string) (client.CreateJobResponse, error)
	AllJobsFn          func(ctx context.Context) ([]client.JobListing, error)
	SearchTextFn       func(ctx context.Context, index, query string) ([]client.SearchHit, error)
	SearchImageFn      func(ctx context.Context, index, dataURL string) ([]client.SearchHit, error)
	SearchClipFn       func(ctx context.Context, index, objectName string) ([]client.SearchHit, error)

	mu    sync.Mutex
	calls []string
}

func (f *FakeAPI) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

// Calls returns the operations invoked so far, in order.
func (f *FakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times the named operation was invoked.
func (f *FakeAPI) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

func (f *FakeAPI) UploadDescriptor(ctx context.Context, kind client.DescriptorKind, objectName string) (client.UploadDescriptor, error) {
	f.record("UploadDescriptor")
	if f.UploadDescriptorFn != nil {
		return f.UploadDescriptorFn(ctx, kind, objectName)
	}
	return client.UploadDescriptor{}, nil
}

func (f *FakeAPI) PlaybackURL(ctx context.Context, objectName string) (string, error) {
	f.record("PlaybackURL")
	if f.PlaybackURLFn != nil {
		return f.PlaybackURLFn(ctx, objectName)
	}
	return "", nil
}

func (f *FakeAPI) CreateJob(ctx context.Context, userID, videoName string) (client.CreateJobResponse, error) {
	f.record("CreateJob")
	if f.CreateJobFn != nil {
		return f.CreateJobFn(ctx, userID, videoName)
	}
	return client.CreateJobResponse{}, nil
}

func (f *FakeAPI) AllJobs(ctx context.Context) ([]client.JobListing, error) {
	f.record("AllJobs")
	if f.AllJobsFn != nil {
		return f.AllJobsFn(ctx)
	}
	return nil, nil
}

func (f *FakeAPI) SearchText(ctx context.Context, index, query string) ([]client.SearchHit, error) {
	f.record("SearchText")
	if f.SearchTextFn != nil {
		return f.SearchTextFn(ctx, index, query)
	}
	return nil, nil
}

func (f *FakeAPI) SearchImage(ctx context.Context, index, dataURL string) ([]client.SearchHit, error) {
	f.record("SearchImage")
	if f.SearchImageFn != nil {
		return f.SearchImageFn(ctx, index, dataURL)
	}
	return nil, nil
}

func (f *FakeAPI) SearchClip(ctx context.Context, index, objectName string) ([]client.SearchHit, error) {
	f.record("SearchClip")
	if f.SearchClipFn != nil {
		return f.SearchClipFn(ctx, index, objectName)
	}
	return nil, nil
}

var _ client.Client = (*FakeAPI)(nil)
