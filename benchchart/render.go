// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"context"

	"github.com/aclements/go-gg/table"
)

// A Display shows a chart to the user. Show blocks until the user
// dismisses the chart or ctx is done.
type Display interface {
	Show(ctx context.Context, c *Chart) error
}

// Render builds the chart described by opts and shows it in a new
// Viewer with default settings, blocking until it is dismissed.
func Render(ctx context.Context, t *table.Table, opts Options) error {
	return RenderTo(ctx, t, opts, new(Viewer))
}

// RenderTo builds the chart described by opts and shows it on d.
func RenderTo(ctx context.Context, t *table.Table, opts Options, d Display) error {
	c, err := New(t, opts)
	if err != nil {
		return err
	}
	return d.Show(ctx, c)
}
