package entities

import "errors"

var (
	// ErrPersistence marks failures of the local key-value store.
	ErrPersistence = errors.New("local storage failure")
	// ErrRemoteUnavailable marks failures of the remote collection or the AI service.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
	// ErrTimeout marks AI service calls that exceeded their deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrKeyNotFound is returned by key-value stores for missing keys.
	ErrKeyNotFound = errors.New("key not found")
)
