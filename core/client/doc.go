// Package client runs streaming completion calls against any registered
// provider dialect and delivers a uniform event sequence to a caller sink.
//
// [New] builds a [Client] from an [ai.CredentialProvider] and functional
// options ([WithRegistry], [WithHTTPClient], [WithObserver], [WithMiddleware]).
// [Client.Stream] resolves the provider, model and endpoint, runs the request
// through the middleware chain and drives one session through
// Idle, Connecting, Streaming, Finalizing and a terminal state. Whatever
// happens, the sink sees exactly one event with Done set, and it is the last.
// [Client.Validate] sends the smallest legal request to confirm a key works.
package client
