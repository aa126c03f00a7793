// Package ui implements the interactive control panel using bubbletea's Elm architecture.
//
// The panel is a single-view companion to the watch loop: it shows whether
// auto-skip is running, the track the loop last observed, and the outcome of
// the most recent action. Key presses pause or resume the loop through its
// [watch.Gate] and fire dislike/un-dislike actions, which run as non-blocking
// bubbletea commands so playback polling is never held up by a slow request.
//
// Keyboard bindings (p, t/a/b, T/A/B, q) display contextual help via
// charmbracelet/bubbles/help.
package ui
