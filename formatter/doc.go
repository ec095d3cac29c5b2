// Package formatter renders arbitrary detail payloads into a single string.
//
// Format is a total function: it never panics and always returns a string.
// It first tries a strict encoding into compact JSON, the form log
// aggregators expect. Errors found anywhere in the value are replaced by
// an object holding their message and stack. When the strict encoding
// fails (the value graph contains a cycle, a function or channel, a
// failing MarshalJSON, or a user method panics) Format falls back to a
// verbose dump in which a value that repeats one of its own ancestors is
// printed as [Circular].
//
// Cycles are detected while encoding, against the chain of containers
// between the root and the current value, so acyclic payloads pay no
// extra pass. Shared references that do not form a cycle are encoded
// every time they appear.
//
// Both encoders write into pooled bytes.Buffer values. Buffers larger than
// 64 KiB are not returned to the pool to prevent a single large payload
// from permanently inflating memory usage.
package formatter
