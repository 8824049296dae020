package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/larsks/hostedit/hostfile"
)

// Response is the success payload returned to the host.
type Response struct {
	Changed    bool   `json:"changed"`
	Message    string `json:"message"`
	BackupFile string `json:"backup_file,omitempty"`
}

// Failure is the payload returned when the module cannot complete.
type Failure struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
}

// WriteResult encodes a successful result to w.
func WriteResult(w io.Writer, result hostfile.Result) error {
	return json.NewEncoder(w).Encode(Response{
		Changed:    result.Changed,
		Message:    result.Message,
		BackupFile: result.BackupFile,
	})
}

// WriteFailure encodes a failure payload to w.
func WriteFailure(w io.Writer, msg string) error {
	return json.NewEncoder(w).Encode(Failure{Failed: true, Msg: msg})
}

// FailureMessage maps an error from Run to the message reported to the
// host. Validation errors pass through verbatim, a missing hosts file
// gets a fixed message, and everything else is reported as unknown with
// the underlying error text.
func FailureMessage(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, hostfile.ErrNotFound):
		return "The specified path does not exist."
	default:
		return fmt.Sprintf("An unknown error occurred: %v", err)
	}
}
