// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log is the project's thin logging seam. It re-exports the
// pieces of github.com/go-kratos/kratos/v2/log that the rest of the
// module needs, so callers depend on this package instead of reaching
// into the vendor directly.
package log

import kratoslog "github.com/go-kratos/kratos/v2/log"

type (
	// Logger is the minimal sink every component logs through.
	Logger = kratoslog.Logger
	// Helper adds leveled convenience methods on top of a Logger.
	Helper = kratoslog.Helper
	// Level is a log severity.
	Level = kratoslog.Level
	// FilterOption configures a Filter logger.
	FilterOption = kratoslog.FilterOption
)

const (
	LevelDebug = kratoslog.LevelDebug
	LevelInfo  = kratoslog.LevelInfo
	LevelWarn  = kratoslog.LevelWarn
	LevelError = kratoslog.LevelError
	LevelFatal = kratoslog.LevelFatal
)

var (
	// NewStdLogger builds a Logger that writes to w.
	NewStdLogger = kratoslog.NewStdLogger
	// NewFilter wraps a Logger so only records at or above a minimum
	// level pass through.
	NewFilter = kratoslog.NewFilter
	// FilterLevel sets the minimum level a Filter lets through.
	FilterLevel = kratoslog.FilterLevel
	// NewHelper wraps a Logger with Debug/Info/Warn/Error/Fatal helpers.
	NewHelper = kratoslog.NewHelper
)
