// Package store defines the persistence interfaces and sentinel errors that
// separate the HTTP/service layers from the concrete database implementation.
package store
