package domain

import "fmt"

// Error taxonomy. The webhook turns UserInputError into a short guidance
// reply and UpstreamError into a generic "couldn't find that"; StorageError
// fails the request. DeliveryError is reported per message and never aborts
// the rest of a page.

// UserInputError means the sender needs to do something differently.
type UserInputError struct {
	Msg string
}

func (e *UserInputError) Error() string { return e.Msg }

// ErrNeedLocation guides a user who sent a command before any location.
func ErrNeedLocation() *UserInputError {
	return &UserInputError{Msg: "I don't know where you are yet. Text me a place or address first."}
}

// UpstreamError wraps a failure from the geocoding or directions backend,
// including an empty route.
type UpstreamError struct {
	Backend string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// DeliveryError wraps a failed outbound message send. It carries the
// provider's raw error payload for the logs.
type DeliveryError struct {
	To      string
	Payload string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("send to %s: %v", e.To, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// StorageError wraps a key-value or queue store failure. Fatal for the
// current request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
