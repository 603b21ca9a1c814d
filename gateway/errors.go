package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
)

// ErrSubmissionInProgress is returned when Submit is called while another
// submission on the same client has not finished.
var ErrSubmissionInProgress = errors.New("a submission is already in progress")

// RemoteError is a non-2xx answer from the service.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// TransportError means no response was received. The message points at the
// local certificate setup, the usual cause during development.
type TransportError struct {
	Endpoint    string
	Certificate certs.Status
	Err         error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf(
		"could not reach %s: %v. Make sure the service is running and its certificate is trusted by this machine (certificates: %s)",
		e.Endpoint, e.Err, e.Certificate)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// remoteMessage pulls a human readable message out of an error body.
func remoteMessage(status int, body []byte) string {
	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) == nil {
		for _, name := range []string{"error", "detail", "message"} {
			raw, ok := fields[name]
			if !ok {
				continue
			}
			var s string
			if json.Unmarshal(raw, &s) == nil {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
				continue
			}
			if msg := strings.TrimSpace(string(raw)); msg != "" && msg != "null" {
				return msg
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
