// Package hostfile provides reading, editing, and writing of
// /etc/hosts-format files.
//
// A file is modeled as an ordered sequence of lines. Lines carrying at
// least an IP token and a hostname token can be matched and rewritten;
// every other line is opaque and passes through verbatim, in its original
// position.
//
// Example usage:
//
//	editor := hostfile.NewEditor("/etc/hosts")
//	result, err := editor.Apply(hostfile.Request{
//	    Hostname: "myserver.local",
//	    IP:       "192.168.1.100",
//	    State:    hostfile.StatePresent,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package hostfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// ErrNotFound indicates that the hosts file does not exist at the
// expected path. Callers discriminate with errors.Is.
var ErrNotFound = errors.New("file does not exist")

// Line is a single line of a hosts file. Raw holds the original text
// without its trailing newline. When the line has at least two
// whitespace-separated tokens, IP and Hostname hold the first two and the
// line participates in matching; otherwise the line is opaque.
type Line struct {
	Raw      string
	IP       string
	Hostname string
	parsed   bool
}

// parseLine splits raw on whitespace. Lines with fewer than two tokens
// stay opaque. Tokens past the second (hostname aliases) are kept in Raw
// but never matched.
func parseLine(raw string) Line {
	line := Line{Raw: raw}
	fields := strings.Fields(raw)
	if len(fields) >= 2 {
		line.IP = fields[0]
		line.Hostname = fields[1]
		line.parsed = true
	}
	return line
}

// NewEntry returns a line formatted the way this package writes new
// entries: IP, a single tab, hostname.
func NewEntry(ip, hostname string) Line {
	return Line{
		Raw:      ip + "\t" + hostname,
		IP:       ip,
		Hostname: hostname,
		parsed:   true,
	}
}

// Matches reports whether the line's hostname token equals name, ignoring
// case. Opaque lines never match.
func (l Line) Matches(name string) bool {
	return l.parsed && strings.EqualFold(l.Hostname, name)
}

// ReadLines reads every line of the file at path, in order. A missing
// file yields an error wrapping ErrNotFound; any other failure is
// returned with the underlying cause.
func ReadLines(path string) ([]Line, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	var lines []Line
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, parseLine(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return lines, nil
}

// WriteLines overwrites the file at path with the given lines, each
// followed by a newline. The file is truncated and rewritten in place; a
// write failure partway through can leave it incomplete.
func WriteLines(path string, lines []Line) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file for writing: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line.Raw); err != nil {
			file.Close() //nolint:errcheck
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close() //nolint:errcheck
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// Backup copies the file at path to a timestamped sibling
// (<path>.<unix-time>.bak), preserving its permissions, and returns the
// copy's path.
func Backup(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	backupPath := fmt.Sprintf("%s.%d.bak", path, time.Now().Unix())
	if err := os.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	return backupPath, nil
}

// DefaultPath returns the standard hosts file location for the current
// platform.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		windir := os.Getenv("SystemRoot")
		if windir == "" {
			windir = `C:\Windows`
		}
		return filepath.Join(windir, "System32", "drivers", "etc", "hosts")
	}
	return "/etc/hosts"
}
