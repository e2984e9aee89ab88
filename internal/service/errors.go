package service

import "errors"

// Error taxonomy for the generation and save pipelines. Generation-path
// errors (ErrUpstream, ErrParseFailed, ErrSchemaInvalid) are absorbed by the
// generation service's fallback and never reach the HTTP layer; the rest map
// onto response codes in the handlers.
var (
	// ErrInvalidInput marks caller input that is malformed or missing (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrOwnerNotFound marks a referenced owner that does not exist (404).
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrUpstream marks a network failure, timeout, or non-OK status from the
	// external generation service.
	ErrUpstream = errors.New("generation service unavailable")
	// ErrParseFailed marks a generation response with no parseable JSON object.
	ErrParseFailed = errors.New("no JSON object in generation response")
	// ErrSchemaInvalid marks parseable JSON missing required curriculum fields.
	ErrSchemaInvalid = errors.New("generation response does not match curriculum schema")
	// ErrStorage marks a persistence write failure (500).
	ErrStorage = errors.New("storage write failed")
)
