// Package config loads logger configuration from YAML files and
// environment variables.
//
// Load looks for rlog.yaml, applies RLOG_ prefixed environment overrides
// (RLOG_LOGGING_LEVEL=debug) and validates the result:
//
//	logging:
//	  level: info
//	  levels: syslog          # or standard, or custom_levels: [...]
//	  catalog: messages.yaml  # optional, see LoadCatalog
//	  messages:
//	    server.started: {level: notice, message: server started}
//	console:
//	  target: stdout          # stdout, stderr or discard
//	  error_rank: 3           # err and more severe go to stderr
//
// Message keys read from the config file are lower-cased; catalogs read
// with LoadCatalog keep their case.
package config
