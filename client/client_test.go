package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cbsinteractive/video-search-client/auth"
	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, srv *httptest.Server, tokens auth.TokenSource) *DefaultClient {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return &DefaultClient{BaseURL: u, Client: srv.Client(), Tokens: tokens}
}

func TestUploadDescriptor(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"url": "https://bucket.example/upload",
			"fields": map[string]string{
				"key":    "videos/a.mp4",
				"policy": "cG9saWN5",
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.Static("tok-123"))
	desc, err := c.UploadDescriptor(context.Background(), KindPost, "a.mp4")
	if err != nil {
		t.Fatalf("UploadDescriptor() error = %v", err)
	}

	if gotPath != "/presignedurl_video" {
		t.Errorf("path = %q, want /presignedurl_video", gotPath)
	}
	if g := gotQuery.Get("type"); g != "post" {
		t.Errorf("type = %q, want post", g)
	}
	if g := gotQuery.Get("object_name"); g != "a.mp4" {
		t.Errorf("object_name = %q, want a.mp4", g)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}

	want := UploadDescriptor{
		URL:    "https://bucket.example/upload",
		Fields: map[string]string{"key": "videos/a.mp4", "policy": "cG9saWN5"},
	}
	if diff := cmp.Diff(want, desc); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.None())
	if _, err := c.AllJobs(context.Background()); err != nil {
		t.Fatalf("AllJobs() error = %v", err)
	}
	if sawHeader {
		t.Errorf("Authorization header sent without a token: %q", gotAuth)
	}
}

func TestPlaybackURL(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"raw string body", "https://bucket.example/v.mp4?sig=abc", "https://bucket.example/v.mp4?sig=abc"},
		{"json encoded string", `"https://bucket.example/v.mp4?sig=abc"`, "https://bucket.example/v.mp4?sig=abc"},
		{"trailing newline", "https://bucket.example/v.mp4\n", "https://bucket.example/v.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotType string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotType = r.URL.Query().Get("type")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv, auth.None())
			got, err := c.PlaybackURL(context.Background(), "v.mp4")
			if err != nil {
				t.Fatalf("PlaybackURL() error = %v", err)
			}
			if gotType != "get" {
				t.Errorf("descriptor type = %q, want get", gotType)
			}
			if got != tt.want {
				t.Errorf("PlaybackURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g := r.URL.Query().Get("userId"); g != "user-1" {
			t.Errorf("userId = %q, want user-1", g)
		}
		if g := r.URL.Query().Get("video_name"); g != "a.mp4" {
			t.Errorf("video_name = %q, want a.mp4", g)
		}
		w.Write([]byte(`{"jobId":"j-1","status":"Indexing","started":"2024-03-01 10:00:00","input":"a.mp4"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.None())
	resp, err := c.CreateJob(context.Background(), "user-1", "a.mp4")
	if err != nil {
		t.Fatalf("CreateJob() error = %v", err)
	}

	want := CreateJobResponse{JobID: "j-1", Status: "Indexing", Started: "2024-03-01 10:00:00", Input: "a.mp4"}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestAllJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"JobId":"j-1","Status":"Completed","Started":"2024-03-01 10:00:00","EndTime":"2024-03-01 10:12:00","Input":"a.mp4"},
			{"JobId":"j-2","Status":"Indexing","Started":"2024-03-02 09:00:00","EndTime":"-","Input":"b.mp4"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.None())
	jobs, err := c.AllJobs(context.Background())
	if err != nil {
		t.Fatalf("AllJobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[1].EndTime != "-" {
		t.Errorf("EndTime placeholder = %q, want -", jobs[1].EndTime)
	}
}

func TestSearchHitNumericParsing(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantStart Millis
		wantScore FlexFloat
	}{
		{
			"times as strings",
			`[{"video_name":"a.mp4","shot_startTime":"1000","shot_endTime":"5000","score":0.87}]`,
			1000, 0.87,
		},
		{
			"times as numbers",
			`[{"video_name":"a.mp4","shot_startTime":1000,"shot_endTime":5000,"score":"0.87"}]`,
			1000, 0.87,
		},
		{
			"missing numeric fields",
			`[{"video_name":"a.mp4"}]`,
			0, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv, auth.None())
			hits, err := c.SearchText(context.Background(), "vss-index", "dog")
			if err != nil {
				t.Fatalf("SearchText() error = %v", err)
			}
			if len(hits) != 1 {
				t.Fatalf("len(hits) = %d, want 1", len(hits))
			}
			if hits[0].StartTimeMs != tt.wantStart {
				t.Errorf("StartTimeMs = %v, want %v", hits[0].StartTimeMs, tt.wantStart)
			}
			if hits[0].Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", hits[0].Score, tt.wantScore)
			}
		})
	}
}

func TestSearchImagePostsJSONBody(t *testing.T) {
	var gotBody searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.None())
	if _, err := c.SearchImage(context.Background(), "vss-index", "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("SearchImage() error = %v", err)
	}

	want := searchRequest{Type: "image", Index: "vss-index", Query: "data:image/png;base64,AAAA"}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such object", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.None())
	_, err := c.PlaybackURL(context.Background(), "missing.mp4")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	statusErr, ok := err.(StatusError)
	if !ok {
		t.Fatalf("error type = %T, want StatusError", err)
	}
	if !statusErr.NotFound() {
		t.Errorf("NotFound() = false for %v", statusErr)
	}
}
