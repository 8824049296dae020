// Package plugin implements the contract between this module and the
// orchestration host that invokes it: a statically typed parameter set
// decoded from a JSON args file, explicit validation, and JSON responses
// written to stdout.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/larsks/hostedit/hostfile"
)

// Params is the argument set supplied by the orchestration host.
type Params struct {
	Hostname      string `json:"hostname"`
	IP            string `json:"ip"`
	State         string `json:"state"`
	Path          string `json:"path"`
	Backup        bool   `json:"backup"`
	NotifyCommand string `json:"notify_command"`
	// CheckMode is a host-internal flag; its key carries the underscore
	// prefix reserved for such flags.
	CheckMode bool `json:"_check_mode"`
}

// ValidationError reports a parameter that failed validation, before any
// file access happens.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// knownParams are the keys accepted in an args file. Keys with a leading
// underscore are host-internal and always tolerated.
var knownParams = map[string]bool{
	"hostname":       true,
	"ip":             true,
	"state":          true,
	"path":           true,
	"backup":         true,
	"notify_command": true,
}

// ParseParams decodes an args document and applies defaults. Unknown keys
// are rejected unless they carry the underscore prefix.
func ParseParams(data []byte) (Params, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Params{}, fmt.Errorf("invalid args document: %w", err)
	}

	for key := range raw {
		if !knownParams[key] && !strings.HasPrefix(key, "_") {
			return Params{}, &ValidationError{msg: fmt.Sprintf("unsupported parameter: %s", key)}
		}
	}

	var params Params
	if err := json.Unmarshal(data, &params); err != nil {
		return Params{}, fmt.Errorf("invalid args document: %w", err)
	}

	params.applyDefaults()
	return params, nil
}

// LoadParams reads and decodes the args file the host passes as the
// module's single argument.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read args file: %w", err)
	}
	return ParseParams(data)
}

func (p *Params) applyDefaults() {
	if p.State == "" {
		p.State = string(hostfile.StatePresent)
	}
	if p.Path == "" {
		p.Path = hostfile.DefaultPath()
	}
}

// Validate checks required fields and enum membership. It returns a
// ValidationError so callers can report the message verbatim.
func (p Params) Validate() error {
	if p.Hostname == "" {
		return &ValidationError{msg: "missing required argument: hostname"}
	}
	if p.IP == "" {
		return &ValidationError{msg: "missing required argument: ip"}
	}
	switch hostfile.State(p.State) {
	case hostfile.StatePresent, hostfile.StateAbsent:
	default:
		return &ValidationError{msg: fmt.Sprintf("value of state must be one of: present, absent, got: %s", p.State)}
	}
	return nil
}

// Request converts the parameters into an edit request. Call Validate
// first.
func (p Params) Request() hostfile.Request {
	return hostfile.Request{
		Hostname:  p.Hostname,
		IP:        p.IP,
		State:     hostfile.State(p.State),
		CheckMode: p.CheckMode,
		Backup:    p.Backup,
	}
}
