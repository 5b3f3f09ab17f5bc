// Package notify manages transient, auto-dismissing status messages.
//
// A Center holds notifications in insertion order. The UI schedules one
// timer per notification and calls Expire with its ID when the timer fires,
// so several notifications can be visible at once with independent
// lifetimes. Dismiss removes one early. Nothing is evicted to make room;
// how many are drawn is up to the caller.
package notify
