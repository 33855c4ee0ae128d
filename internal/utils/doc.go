// Package utils holds the low-level plumbing shared by the streaming engine
// and the provider dialects: the frame scanners that cut a byte stream into
// provider frames ([LineScanner], [JSONScanner]), the HTTP helpers that open a
// stream or fire a validation probe ([DoStream], [DoProbe]), error-body
// extraction, and a few small value helpers.
package utils
