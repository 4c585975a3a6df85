// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the bounding volumes and planes used for culling.
//
// All types are small values built on mgl32 and are safe to copy.
package geom
