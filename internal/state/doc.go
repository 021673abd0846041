// Package state detects the desktop state that drives notification routing.
//
// Two independent signals are probed concurrently on every hook invocation:
// whether the screen is locked, and whether the terminal that launched the
// process is the foreground application. Probing never fails. Any command
// error, timeout, or unsupported platform degrades the affected signal to
// false, which errs toward sending a notification rather than dropping one.
//
// The launching terminal is identified from environment markers set by the
// terminal itself (see ResolveCurrentTerminal). When no marker is present,
// the foreground application is classified on its own with IsKnownTerminal.
package state
