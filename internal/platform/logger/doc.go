// Package logger provides structured logging functionality for the
// application, including context carriage of request-scoped loggers.
package logger
