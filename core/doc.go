// Package core defines the shared types used across rlog.
//
// It provides Level and Levels for severity filtering, Template for
// predeclared messages, Fields for ordered detail payloads and WithStack
// for attaching a stack trace to an error.
//
// A Levels value is an immutable, ordered enumeration of level names. Rank
// 0 is the most severe level and ranks grow towards the most verbose one.
// The enumeration is supplied by configuration; Syslog and Standard are
// ready-made presets. Names are validated once when the enumeration is
// built, so lookups on the logging path are a single map access.
package core
