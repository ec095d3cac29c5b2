// Package consolehandler writes composed log lines to io.Writers
// (default: os.Stdout).
//
// Each line is written with a single Write call, terminated by a newline.
// Lines whose level rank is at most ErrorRank go to ErrWriter, which splits
// error output from regular output the way a console separates stderr from
// stdout. Writes are serialized with a mutex unless both writers are known
// to be safe for concurrent use.
package consolehandler
