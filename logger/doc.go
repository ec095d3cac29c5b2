// Package logger is the public API of rlog. Most users only need to
// import this package.
//
// Every message is declared up front under a key, together with the level
// it is logged at. A Logger is built from those declarations, a level
// enumeration, a threshold and a handler:
//
//	log, err := logger.NewBuilder().
//	    WithHandler(h).
//	    WithLevel("info").
//	    WithMessage("server.started", "notice", "server started").
//	    Build()
//
// Logging refers to messages by key and attaches arbitrary details:
//
//	log.Log("server.started", logger.Details(logger.Int("port", 8080)))
//
// A message is emitted when its level rank is at most the threshold's
// rank. The handler then receives "<level>.<message> <details>", where
// details are rendered by the configured formatter. Formatting never fails.
// Messages below the threshold cost a map lookup and an integer comparison.
//
// A Logger is immutable after construction, so it is safe for concurrent
// use whenever its handler is. Configuration errors (unknown levels,
// templates naming unknown levels, levels a handler cannot serve) are
// reported by New instead of at log time.
package logger
