package search

import (
	"context"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/cbsinteractive/video-search-client/upload"
	"github.com/pkg/errors"
)

const (
	msgUploadingClip = "Uploading clip to search..."
	msgInvalidClip   = "No input file or invalid input filename"
)

// ClipSearchUpload uploads a query clip and then searches with it. Unlike
// catalog uploads, the object is namespaced by prefixing the user ID onto
// the filename, and the combined name is what gets validated. The single
// file's progress is published directly, with no aggregation.
func (o *Orchestrator) ClipSearchUpload(ctx context.Context, userID string, clip upload.File, uploader *upload.Uploader, status upload.StatusSink) ([]ResultViewModel, error) {
	if status == nil {
		status = upload.NopStatusSink{}
	}

	status.Busy(true)
	status.Progress(0)
	status.Info(msgUploadingClip)

	objectName := userID + clip.Name
	if len(clip.Contents) == 0 || !upload.IsValidFilename(objectName) {
		status.Info(msgInvalidClip)
		status.Busy(false)
		return nil, nil
	}

	desc, err := o.API.UploadDescriptor(ctx, client.KindClipSearch, objectName)
	if err != nil {
		return nil, o.clipFailure(errors.Wrapf(err, "requesting clip upload descriptor for %q", objectName))
	}

	err = uploader.Upload(ctx, desc, upload.File{Name: objectName, Contents: clip.Contents}, func(fraction float64) {
		status.Progress(fraction * 100)
	})
	if err != nil {
		return nil, o.clipFailure(errors.Wrapf(err, "uploading query clip %q", objectName))
	}

	status.Busy(false)
	return o.SearchClip(ctx, objectName)
}

func (o *Orchestrator) clipFailure(err error) error {
	o.logger().WithError(err).Error("clip search upload failed")
	if o.Reporter != nil {
		o.Reporter.ReportException(err)
	}
	return err
}
