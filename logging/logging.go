// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides an xhr event handler that writes a structured
// log line, using logrus, for each event in the lifecycle of a request.
//
// Install the handler on every event chain of a handler group:
//
//	logger := logrus.New()
//	handlers := &xhr.HandlerGroup{}
//	logging.Install(handlers, logger)
//	client := &xhr.Client{Handlers: handlers}
package logging

import (
	"github.com/gogama/xhr"
	"github.com/gogama/xhr/request"
	"github.com/sirupsen/logrus"
)

// Field names used in every log entry.
const (
	FieldID       = "id"
	FieldEvent    = "event"
	FieldMethod   = "method"
	FieldURL      = "url"
	FieldStatus   = "status"
	FieldDuration = "duration"
)

type handler struct {
	logger logrus.FieldLogger
}

// NewHandler returns a handler that logs each event it handles to
// logger. The lifecycle events before completion are logged at debug
// level. AfterLoad and AfterSettle are logged at info level when the
// request succeeded and at warning level when it was rejected, and
// AfterError and AfterAbort are always logged at warning level.
func NewHandler(logger logrus.FieldLogger) xhr.Handler {
	if logger == nil {
		panic("xhr/logging: nil logger")
	}
	return &handler{logger: logger}
}

// Install pushes a handler created by NewHandler onto the back of every
// event chain in g.
func Install(g *xhr.HandlerGroup, logger logrus.FieldLogger) {
	h := NewHandler(logger)
	for _, evt := range xhr.Events() {
		g.PushBack(evt, h)
	}
}

func (h *handler) Handle(evt xhr.Event, e *request.Execution) {
	entry := h.logger.WithFields(logrus.Fields{
		FieldID:     e.ID.String(),
		FieldEvent:  evt.Name(),
		FieldMethod: e.Method,
		FieldURL:    e.URL,
	})

	switch evt {
	case xhr.BeforeOpen:
		entry.Debug("opening request")
	case xhr.BeforeSend:
		entry.Debug("sending request")
	case xhr.AfterLoad:
		entry = entry.WithField(FieldStatus, e.StatusCode)
		if e.Err != nil {
			entry.WithError(e.Err).Warn("response loaded with error status")
		} else {
			entry.Info("response loaded")
		}
	case xhr.AfterError:
		entry.WithField(FieldStatus, e.StatusCode).WithError(e.Err).Warn("transport error")
	case xhr.AfterAbort:
		entry.WithError(e.Err).Warn("request aborted")
	case xhr.AfterSettle:
		entry = entry.WithFields(logrus.Fields{
			FieldStatus:   e.StatusCode,
			FieldDuration: e.Duration(),
		})
		if e.Err != nil {
			entry.WithError(e.Err).Warn("request rejected")
		} else {
			entry.Info("request resolved")
		}
	}
}
