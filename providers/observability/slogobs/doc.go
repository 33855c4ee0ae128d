// Package slogobs implements observability.Provider on top of log/slog.
//
// Spans become debug records at start and end, counters keep an in-memory
// running total that can be read back with [Observer.CounterValue], and the
// logger methods map one-to-one onto slog levels plus a TRACE level below
// DEBUG. Output is written by [NewHandler] in one of three formats (compact,
// pretty or json), chosen with [WithFormat] or the AISTREAM_LOG_FORMAT
// environment variable. The minimum level follows [WithLevel] or
// AISTREAM_LOG_LEVEL.
package slogobs
