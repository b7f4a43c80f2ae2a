// Package exceptions routes unexpected client errors to an external
// collector. Transport failures in this application are deliberately quiet
// in the UI, so the reporter is the only place they surface with full
// detail.
package exceptions

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const defaultFlushTimeout = time.Second * 5

// Reporter sends exceptions to an external source
type Reporter interface {
	ReportException(err error)
}

// NoopReporter is a no-op exception reporter
type NoopReporter struct{}

// ReportException does nothing
func (r *NoopReporter) ReportException(_ error) {}

// LogReporter records exceptions to a logger instead of an external
// service; used when no collector DSN is configured.
type LogReporter struct {
	Log *logrus.Logger
}

// ReportException logs the error at error level.
func (r *LogReporter) ReportException(err error) {
	if r.Log == nil || err == nil {
		return
	}
	r.Log.WithError(err).Error("unexpected error")
}

// SentryReporter is a Reporter that sends error information to Sentry
type SentryReporter struct{}

// NewSentryReporter creates and returns an instance of SentryReporter
func NewSentryReporter(dsn, env string) (*SentryReporter, error) {
	err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: env})
	if err != nil {
		return nil, err
	}

	return &SentryReporter{}, nil
}

// ReportException will send errors to Sentry
func (r *SentryReporter) ReportException(err error) {
	sentry.CaptureException(err)
	sentry.Flush(defaultFlushTimeout)
}
