// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "log/slog"

// Option configures a Renderer during creation.
//
// Example:
//
//	r := render.NewRenderer(b,
//		render.WithPlatform(render.FixedPlatform{Width: 800, Height: 600}),
//		render.WithDefaultLayer(1),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	platform     Platform
	logger       *slog.Logger
	defaultLayer int
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		platform: FixedPlatform{},
	}
}

// WithPlatform sets the platform reporting the default framebuffer size and
// display orientation.
func WithPlatform(p Platform) Option {
	return func(o *options) {
		if p != nil {
			o.platform = p
		}
	}
}

// WithLogger sets a logger for this Renderer instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDefaultLayer sets the layer Renderer.Add puts Drawables in.
func WithDefaultLayer(id int) Option {
	return func(o *options) {
		o.defaultLayer = id
	}
}
