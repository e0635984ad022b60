// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package x11 connects panelbg to a live X server.
//
// Desktop implements panelbg.DesktopSource: it reads the root window
// background named by the _XROOTPMAP_ID property, which wallpaper setters
// maintain, and reports wallpaper and screen geometry changes from root
// window events.
//
// Window implements surface.Target on an X window by setting its background
// pixmap or background pixel. Importing this package registers it with the
// surface registry under the name "x11".
//
// Events are dispatched by xgbutil's xevent loop; see Run.
package x11
