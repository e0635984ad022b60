// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"context"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Run dispatches X events until ctx is done or the connection closes.
// Watch callbacks, window callbacks and everything they drive run on the
// calling goroutine.
//
// Work from other goroutines is handed over through do: each function sent
// on it runs between events on the loop goroutine. do may be nil.
func Run(ctx context.Context, X *xgbutil.XUtil, do <-chan func()) error {
	before, after, quit := xevent.MainPing(X)
	for {
		select {
		case <-ctx.Done():
			xevent.Quit(X)
			<-quit
			return ctx.Err()
		case fn := <-do:
			fn()
		case <-before:
			<-after
		case <-quit:
			return nil
		}
	}
}
