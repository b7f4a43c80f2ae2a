// Package test holds small helpers shared by the package test suites.
package test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func AssertWantErr(err error, wantErr, caller string, t *testing.T) bool {
	t.Helper()
	if err != nil {
		if wantErr != err.Error() {
			t.Errorf("%s error = %v, wantErr %q", caller, err, wantErr)
		}

		return true
	} else if wantErr != "" {
		t.Errorf("%s expected error %q, did not receive an error", caller, wantErr)
		return true
	}

	return false
}

// JSONServer returns an httptest server that answers every request with the
// given status and body, and records the last request seen.
func JSONServer(t *testing.T, status int, body string) (*httptest.Server, *RequestRecorder) {
	t.Helper()
	rec := &RequestRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		rec.Authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

// RequestRecorder captures the shape of the last request a JSONServer saw.
type RequestRecorder struct {
	Method        string
	Path          string
	Query         map[string][]string
	Authorization string
}
