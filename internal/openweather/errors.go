package openweather

import "fmt"

// NetworkError means the request never produced an HTTP response:
// connection refused, DNS failure, timeout or a cancelled context.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %s", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HttpStatusError is a non-2xx answer. Message is the provider's own
// explanation when the body carried one.
type HttpStatusError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *HttpStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s API returned status %d: %s", e.Endpoint, e.Status, e.Message)
}

// DecodeError means the body did not have the expected JSON shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode %s response: %s", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
