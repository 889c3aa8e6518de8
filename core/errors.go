package core

import (
	"encoding/json"
	"errors"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrDeletionNotPending = errors.New("no matching deletion request")
)

// Error is the JSON error body every handler replies with on failure.
type Error struct {
	Message string   `json:"message,omitempty"`
	Err     []string `json:"err,omitempty"`
}

func NewError(message string, errs ...error) *Error {
	var msgs []string

	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	return &Error{Message: message, Err: msgs}
}

func (e *Error) Error() string {
	//nolint:errchkjson
	data, _ := json.Marshal(e)
	return string(data)
}
