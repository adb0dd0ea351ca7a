// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package faceui draws the clock in a terminal.
//
// [Draw] rasterizes a face onto a character [Canvas]. Terminal cells
// are roughly twice as tall as they are wide, so the canvas is 4r+1
// columns by 2r+1 rows for radius r and horizontal offsets are doubled
// to keep the dial round.
//
// [Model] is a bubbletea model that owns a [tui.Motion] and redraws
// at ~30fps while any hand is in transition. The driver reaches it
// through [ProgramSink], which turns each driver call into a tea
// message, so the driver never touches the model directly:
//
//	driver --Emit/EnableAnimation--> ProgramSink --Send--> Model.Update
//	Model --(r key, as a tea.Cmd)--> driver.Resync
//
// [Print] renders a single still frame for non-interactive use.
package faceui
