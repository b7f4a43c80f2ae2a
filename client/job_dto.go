package client

// UploadDescriptor is a single-use presigned POST credential bundle minted
// by the backend. Fields must be sent as multipart form values ahead of the
// file contents.
type UploadDescriptor struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// CreateJobResponse is the backend's acknowledgement of a new processing job.
type CreateJobResponse struct {
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
	Started string `json:"started"`
	Input   string `json:"input"`
}

// JobListing is one row of the bulk job listing. EndTime carries the literal
// placeholder "-" while a job is still running.
type JobListing struct {
	JobID   string `json:"JobId"`
	Status  string `json:"Status"`
	Started string `json:"Started"`
	EndTime string `json:"EndTime"`
	Input   string `json:"Input"`
}
