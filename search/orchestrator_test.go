package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/cbsinteractive/video-search-client/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(name string, startMs, endMs int64) client.SearchHit {
	return client.SearchHit{
		VideoName:   name,
		StartTimeMs: client.Millis(startMs),
		EndTimeMs:   client.Millis(endMs),
		Score:       0.9,
		Transcript:  "transcript",
		Description: "description",
	}
}

func TestSearchTextDeduplicatesByVideoAndStart(t *testing.T) {
	api := &test.FakeAPI{
		SearchTextFn: func(ctx context.Context, index, query string) ([]client.SearchHit, error) {
			return []client.SearchHit{
				hit("a.mp4", 1000, 5000),
				hit("a.mp4", 1000, 7000),
				hit("a.mp4", 2000, 8000),
				hit("b.mp4", 1000, 5000),
			}, nil
		},
	}
	o := &Orchestrator{API: api, Index: "vss-index"}

	vms, err := o.SearchText(context.Background(), "dog")
	require.NoError(t, err)
	require.Len(t, vms, 3)

	assert.Equal(t, "a.mp4", vms[0].VideoName)
	assert.Equal(t, int64(1000), vms[0].StartTimeMs)
	assert.Equal(t, int64(5000), vms[0].EndTimeMs, "the first occurrence wins")
	assert.Equal(t, int64(2000), vms[1].StartTimeMs)
	assert.Equal(t, "b.mp4", vms[2].VideoName)
}

func TestSearchPassesIndexAndQuery(t *testing.T) {
	var gotIndex, gotQuery string
	api := &test.FakeAPI{
		SearchTextFn: func(ctx context.Context, index, query string) ([]client.SearchHit, error) {
			gotIndex, gotQuery = index, query
			return nil, nil
		},
	}
	o := &Orchestrator{API: api, Index: "vss-index"}

	_, err := o.SearchText(context.Background(), "red car")
	require.NoError(t, err)
	assert.Equal(t, "vss-index", gotIndex)
	assert.Equal(t, "red car", gotQuery)
}

func TestSearchImageEncodesDataURL(t *testing.T) {
	var gotQuery string
	api := &test.FakeAPI{
		SearchImageFn: func(ctx context.Context, index, dataURL string) ([]client.SearchHit, error) {
			gotQuery = dataURL
			return nil, nil
		},
	}
	o := &Orchestrator{API: api, Index: "vss-index"}

	_, err := o.SearchImage(context.Background(), []byte{0, 1, 2}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAEC", gotQuery)
}

func TestSearchTogglesIndicator(t *testing.T) {
	var mu sync.Mutex
	var toggles []bool
	api := &test.FakeAPI{}
	o := &Orchestrator{
		API:   api,
		Index: "vss-index",
		Searching: func(on bool) {
			mu.Lock()
			toggles = append(toggles, on)
			mu.Unlock()
		},
	}

	_, err := o.SearchText(context.Background(), "dog")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, toggles)
}

func TestSupersededSearchDiscardsItsResults(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	api := &test.FakeAPI{
		SearchTextFn: func(ctx context.Context, index, query string) ([]client.SearchHit, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-release
				return []client.SearchHit{hit("stale.mp4", 1000, 5000)}, nil
			}
			return []client.SearchHit{hit("fresh.mp4", 2000, 6000)}, nil
		},
	}
	o := &Orchestrator{API: api, Index: "vss-index"}

	firstErr := make(chan error, 1)
	go func() {
		_, err := o.SearchText(context.Background(), "first")
		firstErr <- err
	}()

	<-started
	vms, err := o.SearchText(context.Background(), "second")
	require.NoError(t, err)
	require.Len(t, vms, 1)
	assert.Equal(t, "fresh.mp4", vms[0].VideoName)

	close(release)
	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
}

func TestSearchErrorIsReported(t *testing.T) {
	boom := assert.AnError
	api := &test.FakeAPI{
		SearchTextFn: func(ctx context.Context, index, query string) ([]client.SearchHit, error) {
			return nil, boom
		},
	}
	rep := &countingReporter{}
	o := &Orchestrator{API: api, Index: "vss-index", Reporter: rep}

	_, err := o.SearchText(context.Background(), "dog")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rep.count())
}

type countingReporter struct {
	mu sync.Mutex
	n  int
}

func (r *countingReporter) ReportException(error) {
	r.mu.Lock()
	r.n++
	r.mu.Unlock()
}

func (r *countingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}
