package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConfigurationError is raised before any outbound call when a required setting is absent.
type ConfigurationError struct {
	Setting string
	Msg     string
}

func (e ConfigurationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Setting != "" {
		return fmt.Sprintf("Missing %s environment variable.", e.Setting)
	}
	return "configuration error"
}

// UpstreamError carries a non-success answer from the completion service.
// Status is the upstream HTTP status and is passed through to the caller.
type UpstreamError struct {
	Status int
	Msg    string
}

func (e UpstreamError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("upstream error (status %d)", e.Status)
}

// TransportError wraps network and decode failures talking to the completion service.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	if e.Err == nil {
		return "Server error while generating itinerary."
	}
	return e.Err.Error()
}

func (e TransportError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConfiguration(err error) bool {
	var target ConfigurationError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

// StatusOf maps an error to the HTTP status reported to the caller.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var up UpstreamError
	if errors.As(err, &up) && up.Status > 0 {
		return up.Status
	}
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
