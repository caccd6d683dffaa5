// Package logger wraps zap for the remediation binaries:
//   - a global sugared logger with console or JSON encoding,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing that understands the LOG_LEVEL names used by Lambda runtimes,
//   - leveled helpers (Infof, WarnKV, ErrorKV, etc.).
//
// Components take a context and log through the logger stored in it, so a batch
// id or a test observer attached upstream shows up on every line.
package logger
