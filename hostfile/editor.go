package hostfile

import (
	"fmt"

	"github.com/apex/log"
)

// State selects whether an entry should exist after Apply.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// Request describes a single idempotent change to a hosts file.
type Request struct {
	Hostname string
	IP       string
	State    State
	// CheckMode computes the result without writing the file.
	CheckMode bool
	// Backup saves a timestamped copy of the file before a change is
	// written.
	Backup bool
}

// Result reports what Apply did, or would have done in check mode.
type Result struct {
	Changed    bool
	Message    string
	BackupFile string
}

// Result messages, matched by callers and by orchestration playbooks.
const (
	MessagePairExists = "IP / Hostname pair exist. No changes made."
	MessageUpdated    = "IP updated for hostname."
	MessageAdded      = "Hostname added with IP."
	MessageRemoved    = "Hostname removed."
	MessageNotPresent = "Hostname does not exist. No changes made."
)

// Editor applies entry changes to the hosts file at a fixed path.
type Editor struct {
	path string
}

// NewEditor creates an editor for the given hosts file path. Nothing is
// read until Apply is called.
func NewEditor(path string) *Editor {
	return &Editor{path: path}
}

// Apply reads the hosts file, applies the requested change, and rewrites
// the file unless the request is in check mode. The file is rewritten
// even when nothing changed.
func (e *Editor) Apply(req Request) (Result, error) {
	if req.State == "" {
		req.State = StatePresent
	}

	lines, err := ReadLines(e.path)
	if err != nil {
		return Result{}, err
	}

	updated, result := applyLines(lines, req)
	log.WithFields(log.Fields{
		"hostname": req.Hostname,
		"ip":       req.IP,
		"state":    string(req.State),
		"changed":  result.Changed,
	}).Debug("computed hosts file update")

	if req.CheckMode {
		return result, nil
	}

	if req.Backup && result.Changed {
		backupPath, err := Backup(e.path)
		if err != nil {
			return Result{}, fmt.Errorf("failed to back up file: %w", err)
		}
		result.BackupFile = backupPath
	}

	if err := WriteLines(e.path, updated); err != nil {
		return Result{}, err
	}

	return result, nil
}

// applyLines runs the edit algorithm over lines and returns the updated
// sequence along with the outcome.
//
// The hostname token is compared case-insensitively and the IP exactly.
// When several lines carry the same hostname, each is processed
// independently and the result fields reflect whichever matching line was
// processed last in file order.
func applyLines(lines []Line, req Request) ([]Line, Result) {
	var result Result
	updated := make([]Line, 0, len(lines)+1)
	foundHostname := false

	for _, line := range lines {
		if !line.Matches(req.Hostname) {
			updated = append(updated, line)
			continue
		}

		foundHostname = true
		if line.IP == req.IP {
			// Exact pair already present; keep the line as is.
			updated = append(updated, line)
			result.Changed = false
			result.Message = MessagePairExists
			continue
		}

		if req.State == StatePresent {
			// Same hostname, different IP: rewrite in place.
			updated = append(updated, NewEntry(req.IP, req.Hostname))
			result.Changed = true
			result.Message = MessageUpdated
		}
		// In the absent state the line is dropped here; the removal
		// pass below reports the change.
	}

	if req.State == StatePresent && !foundHostname {
		// The append is skipped in check mode but the result still
		// reports it: check mode is a decision preview, not a full
		// simulation of the write.
		if !req.CheckMode {
			updated = append(updated, NewEntry(req.IP, req.Hostname))
		}
		result.Changed = true
		result.Message = MessageAdded
	}

	if req.State == StateAbsent {
		if foundHostname {
			// Re-filter the built output so that a kept exact-match
			// line is removed as well.
			kept := updated[:0]
			for _, line := range updated {
				if !line.Matches(req.Hostname) {
					kept = append(kept, line)
				}
			}
			updated = kept
			result.Changed = true
			result.Message = MessageRemoved
		} else {
			result.Message = MessageNotPresent
		}
	}

	return updated, result
}
