/*
Package session orchestrates concurrent access to conversation state.

Each turn is a load-process-save cycle; this package serializes those
cycles per session with in-process reference-counted locks, and
optionally across replicas with a distributed locker.
*/
package session
