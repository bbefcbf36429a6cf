package entity

import "errors"

var (
	// ErrFetch means the remote launch source was unreachable or returned unusable data.
	ErrFetch = errors.New("launch fetch failed")

	// ErrStorageRead means the favorites could not be read from durable storage.
	ErrStorageRead = errors.New("favorites storage read failed")

	// ErrStorageWrite means the favorites could not be written to durable storage.
	ErrStorageWrite = errors.New("favorites storage write failed")

	// ErrMalformedRecord marks a fetched record that lacks required fields.
	ErrMalformedRecord = errors.New("malformed launch record")

	// ErrLaunchNotFound means no cached or favorited launch has the requested ID.
	ErrLaunchNotFound = errors.New("launch not found")
)
