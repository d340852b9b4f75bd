// Package reservebook implements the Reserve Book use case.
//
// A reservation places a time-bounded hold on an available book. The window length is a
// policy of the library and is configured on the CommandHandler.
package reservebook
