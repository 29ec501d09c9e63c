// Package diag is the diagnostics sink the engines thread through their
// entry points instead of holding process-level logger state. Callers that
// want output pass Glog(); tests pass Discard().
package diag

import (
	log "github.com/golang/glog"
)

// Sink receives diagnostic messages from the pipeline. All methods take a
// printf-style format string.
type Sink interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Notice(format string, args ...interface{})
	Warning(format string, args ...interface{})
}

type glogSink struct{}

func (glogSink) Debug(format string, args ...interface{})   { log.V(2).Infof(format, args...) }
func (glogSink) Info(format string, args ...interface{})    { log.Infof(format, args...) }
func (glogSink) Notice(format string, args ...interface{})  { log.V(1).Infof(format, args...) }
func (glogSink) Warning(format string, args ...interface{}) { log.Warningf(format, args...) }

// Glog returns a Sink backed by the process glog logger, for use by the
// CLI binaries.
func Glog() Sink { return glogSink{} }

type discardSink struct{}

func (discardSink) Debug(string, ...interface{})   {}
func (discardSink) Info(string, ...interface{})    {}
func (discardSink) Notice(string, ...interface{})  {}
func (discardSink) Warning(string, ...interface{}) {}

// Discard returns a Sink that drops everything. It is the default for
// library callers that do not care about diagnostics, and for tests.
func Discard() Sink { return discardSink{} }
