// Package logging configures log/slog for the larder binaries.
//
// Both larder and larderd install a JSON handler on stderr as the slog
// default. Every record carries the binary name and build version:
//
//	{"time":"...","level":"WARN","msg":"skipped registration","module":"larder","version":"0.3.1","line":812,"name":"Pie"}
//
// At debug level the handler also records the source location.
//
// # Levels
//
// ParseLogLevel accepts debug, info, warn (or warning) and error in any case.
// Anything else is info. The level comes from --log-level on the CLI and
// from LOG_LEVEL for both binaries:
//
//	LOG_LEVEL=debug larder --from-script validate
//
// # What gets logged where
//
// The parser reports verbatim fallbacks and skipped assignments at WARN with
// the script line. The loader reports missing inputs at WARN and a one-line
// summary at INFO. Resolver cache hits are DEBUG.
//
// NewLogLogger bridges the default handler into a *log.Logger for
// http.Server.ErrorLog.
package logging
