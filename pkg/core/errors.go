// Package errors pkg/core/errors.go provides errors for the core package.

package core

import "errors"

var (
	// ErrTrainNotFound is surfaced to the caller before any transport
	// interaction; retrying without a configuration change is pointless.
	ErrTrainNotFound = errors.New("train not found")

	// ErrControllerNotFound means the train's owning controller is not
	// registered in the configuration store.
	ErrControllerNotFound = errors.New("controller not found")

	// ErrTransportUnavailable means the publish was not accepted by the
	// broker. Commands are absolute operations, so the caller may retry.
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrInvalidManifest aborts startup; no partial writes happen.
	ErrInvalidManifest = errors.New("invalid manifest")

	errUnknownController = errors.New("heartbeat from unregistered controller")
)
