// Package job tracks video processing jobs on the client side: an ordered
// in-memory registry of job records and the upload-then-create-jobs flow
// that feeds it. Nothing here is persisted; a fresh listing fetch is the
// only way to observe a job's terminal state.
package job

import (
	"time"

	"github.com/cbsinteractive/video-search-client/client"
)

// Record is one processing job as this client knows it. Records are
// immutable once created; status changes only become visible through a new
// bulk listing.
type Record struct {
	JobID     string
	Status    string
	StartTime string
	EndTime   string
	InputName string
}

// RecordFromListing converts a bulk-listing row into a Record. The backend
// reports unfinished jobs with the placeholder "-" end time, which maps to
// an empty string here.
func RecordFromListing(l client.JobListing) Record {
	end := l.EndTime
	if end == "-" {
		end = ""
	}
	return Record{
		JobID:     l.JobID,
		Status:    l.Status,
		StartTime: l.Started,
		EndTime:   end,
		InputName: l.Input,
	}
}

// recordFromCreation converts a create-job acknowledgement into a Record. A
// freshly created job has no end time yet.
func recordFromCreation(resp client.CreateJobResponse) Record {
	return Record{
		JobID:     resp.JobID,
		Status:    resp.Status,
		StartTime: resp.Started,
		EndTime:   "",
		InputName: resp.Input,
	}
}

// startTimeLayouts covers the formats the backend has been seen emitting.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseStartTime(s string) time.Time {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
