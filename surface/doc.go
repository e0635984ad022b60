// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the rendering target a panel background is bound to.
//
// A Target stands in for a window and its "set background" primitive. The
// background pipeline in package panelbg only talks to a Target, which keeps
// it testable without a display:
//
//   - ImageTarget: in-memory target that records every bind and can render
//     the bound background into a pixel buffer
//   - x11.Window: the real target, registered by package x11
//
// # Backends
//
// Backends register themselves by name:
//
//	func init() {
//	    surface.Register(surface.Backend{Name: "x11", Priority: 100, Open: openWindow, Available: displayAvailable})
//	}
//
//	// Later:
//	t, err := surface.Open("x11", surface.DefaultOptions(800, 24))
//
// The "image" backend is built in and always available.
package surface
