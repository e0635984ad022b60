// Package panelbg renders the background of a desktop panel so that it blends
// with the wallpaper of an X11 desktop.
//
// # Overview
//
// A panel background is one of three things: nothing (the host's default
// style), a solid color with an opacity, or an image that may be fitted,
// stretched or rotated to the panel. Translucent colors and images with an
// alpha channel are drawn over a copy of the wallpaper under the panel, so
// the panel looks transparent without a compositing manager.
//
// # Pipeline
//
// Each panel window owns a [State]. A State runs three stages:
//
//   - Transform: decode, scale and rotate the configured image
//   - Composite: blend the image or color over the desktop snapshot
//   - Prepare: bind the result as the window background
//
// A stage is only valid while every earlier stage is valid. Setters and
// geometry changes invalidate the cheapest suffix of the pipeline that
// their change affects and rerun it synchronously.
//
// # Desktop snapshots
//
// Wallpaper pixels come from a [Monitor], one per screen, shared by every
// panel on that screen through a [Registry]. The Monitor reads the root
// window background once, caches it, and drops the cache when the wallpaper
// or the screen geometry changes.
//
// # Quick Start
//
//	reg := panelbg.NewRegistry(desktop) // an x11.Desktop or a StaticDesktop
//	st := panelbg.NewState(reg, panelbg.WithOnChange(func(*panelbg.State) {
//	    // schedule a redraw of child widgets
//	}))
//	st.Realize(target) // a surface.Target
//	st.ChangeRegion(panelbg.OrientationTop, 0, 0, 1920, 24)
//	st.SetColor(panelbg.RGB{R: 0x20, G: 0x20, B: 0x20})
//	st.SetOpacity(160)
//	st.SetType(panelbg.TypeColor)
//
// # Concurrency
//
// State and Monitor are driven from a single event-loop goroutine. Registry
// and the shared image cache are safe for concurrent use.
//
// # Logging
//
// panelbg is silent by default. Use [SetLogger] to enable output.
package panelbg
