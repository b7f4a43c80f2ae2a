package job

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/cbsinteractive/video-search-client/exceptions"
	"github.com/cbsinteractive/video-search-client/upload"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Status messages published through the StatusSink. These are user-facing
// strings; transport details stay in the logs.
const (
	msgUploading   = "Uploading video..."
	msgInvalidFile = "No input file or invalid input filename"
	msgCreating    = "Creating processing job..."
	msgCreated     = "Processing job is successfully created."
	msgGenericErr  = "It seems there was an error processing your request. Please try again!"
)

// CreationService runs the upload-and-create-jobs flow for a batch of video
// files: every file is validated, all valid files upload concurrently, and
// only when the whole batch has uploaded does job creation start, one
// request per file, again concurrently.
//
// Job-creation latency is invisible to the client, so progress for that
// phase is a bounded random walk: it starts somewhere in [70,90], never
// decreases, stays below 100 until the last job lands, then snaps to 100.
// The walk exists purely so the bar does not appear frozen.
type CreationService struct {
	API      client.Client
	Uploader *upload.Uploader
	Registry *Registry
	Status   upload.StatusSink
	Log      *logrus.Logger
	Reporter exceptions.Reporter

	// randBetween is swappable for deterministic tests.
	randBetween func(lo, hi int) int

	gen atomic.Uint64
}

// Run executes one batch. It requires a resolved user identity and a
// non-empty file set; absent either, nothing starts and no request is sent.
// A new call supersedes any still-running batch: the older batch keeps
// working but its status updates are discarded.
func (s *CreationService) Run(ctx context.Context, userID string, files []upload.File) error {
	if userID == "" || len(files) == 0 {
		return nil
	}

	gen := s.gen.Add(1)
	batch := uuid.NewString()
	log := s.logger().WithFields(logrus.Fields{"batch": batch, "files": len(files)})

	s.publish(gen, func(sink upload.StatusSink) {
		sink.Busy(true)
		sink.Progress(0)
		sink.Info(msgUploading)
	})

	agg := upload.NewAggregator(len(files))
	var succeeded atomic.Int32

	var g errgroup.Group
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if !upload.IsValidFilename(f.Name) {
				log.WithField("object", f.Name).Warn("rejected invalid filename")
				s.publish(gen, func(sink upload.StatusSink) {
					sink.Info(msgInvalidFile)
					sink.Busy(false)
				})
				return nil
			}

			desc, err := s.API.UploadDescriptor(ctx, client.KindPost, f.Name)
			if err != nil {
				s.fail(log, errors.Wrapf(err, "requesting upload descriptor for %q", f.Name))
				return err
			}

			err = s.Uploader.Upload(ctx, desc, f, func(fraction float64) {
				agg.Update(i, fraction)
				s.publish(gen, func(sink upload.StatusSink) {
					sink.Progress(agg.Overall())
				})
			})
			if err != nil {
				s.fail(log, errors.Wrapf(err, "uploading %q", f.Name))
				return err
			}

			succeeded.Add(1)
			return nil
		})
	}
	err := g.Wait()

	// Job creation is all-or-nothing: a partial batch never proceeds.
	if int(succeeded.Load()) != len(files) {
		return err
	}

	s.createJobs(ctx, gen, log, userID, files)
	return nil
}

// createJobs issues one create-job request per uploaded file and prepends a
// Record into the registry as each one succeeds.
func (s *CreationService) createJobs(ctx context.Context, gen uint64, log *logrus.Entry, userID string, files []upload.File) {
	walk := s.randInt(70, 90)
	s.publish(gen, func(sink upload.StatusSink) {
		sink.Progress(float64(walk))
		sink.Info(msgCreating)
	})

	var mu sync.Mutex
	created := 0

	var g errgroup.Group
	for _, f := range files {
		f := f
		g.Go(func() error {
			resp, err := s.API.CreateJob(ctx, userID, f.Name)
			if err != nil {
				s.fail(log, errors.Wrapf(err, "creating job for %q", f.Name))
				s.publish(gen, func(sink upload.StatusSink) {
					sink.Info(msgGenericErr)
					sink.Busy(false)
				})
				return err
			}

			if s.Registry != nil {
				s.Registry.Prepend(recordFromCreation(resp))
			}
			log.WithFields(logrus.Fields{"jobID": resp.JobID, "object": f.Name}).Info("processing job created")

			// Publishing under the lock keeps the walk values arriving in
			// order, so the bar never moves backwards.
			mu.Lock()
			created++
			if created == len(files) {
				s.publish(gen, func(sink upload.StatusSink) {
					sink.Progress(100)
					sink.Info(msgCreated)
					sink.Busy(false)
				})
			} else {
				walk = s.randInt(walk, 99)
				s.publish(gen, func(sink upload.StatusSink) {
					sink.Progress(float64(walk))
				})
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
}

// publish forwards a status update unless a newer batch has started since
// gen was captured.
func (s *CreationService) publish(gen uint64, fn func(upload.StatusSink)) {
	if s.Status == nil || s.gen.Load() != gen {
		return
	}
	fn(s.Status)
}

func (s *CreationService) fail(log *logrus.Entry, err error) {
	log.WithError(err).Error("batch operation failed")
	if s.Reporter != nil {
		s.Reporter.ReportException(err)
	}
}

func (s *CreationService) randInt(lo, hi int) int {
	if s.randBetween != nil {
		return s.randBetween(lo, hi)
	}
	return lo + rand.Intn(hi-lo+1)
}

func (s *CreationService) logger() *logrus.Logger {
	if s.Log != nil {
		return s.Log
	}
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
