// Package handler provides the Handler interface, the transport a logger
// dispatches composed lines to, and its built-in implementations.
//
// Handlers are synchronous: Handle returns once the line has been handed
// to the destination. Every handler in this module is safe for concurrent
// use as long as its destination is.
//
// Built-in handlers:
//
//   - LevelHandler routes each line to a function registered for its
//     level name, one function per level.
//   - MultiHandler fans a line out to several handlers and joins their
//     errors.
//   - CountingHandler counts lines per level and failed deliveries.
//   - SlogHandler forwards lines to a *slog.Logger.
//   - consolehandler, zaphandler, zerologhandler and logrushandler (in
//     sub-packages) write to io.Writers and to the zap, zerolog and logrus
//     libraries.
//
// Libraries with a fixed set of levels receive lines at the Class returned
// by Classify, which maps any level name onto debug, info, warn or error.
package handler
