// Package logger wraps zap to provide:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and switching,
//   - shortcuts such as Infof or ErrorKV that read the logger from a context.
//
// The watcher and its collaborators receive a context and log through it,
// so every line carries the component name that produced it.
package logger
