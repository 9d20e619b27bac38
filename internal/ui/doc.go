// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and exporting releases:
//  1. [ReleaseListView] : Browse the release library
//  2. [SongListView] : Preview songs on a release
//  3. [ConfirmView] : Confirm the export operation
//  4. [ExportView] : Monitor real-time progress updates
//  5. [ResultView] : Display output files and failures
//  6. [LoginView] : Shown when the session ends mid-run
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the studio engine, providing non-blocking status reporting during exports.
//
// Session events (expired tokens, forced logouts) arrive from the auth layer via [ProgramLink],
// which renders them as transient banners and routes the user to [LoginView].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
