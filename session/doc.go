// Package session houses concrete implementations of core.SessionStore. The
// interface itself (and the Session struct) live in the core package to
// centralize domain contracts; keeping only implementations here prevents the
// engine from depending on concrete storage.
//
// Add additional backends (Redis, Postgres, filesystem, etc.) alongside
// without changing any calling code, only the wiring layer needs to decide
// which implementation to instantiate.
package session
