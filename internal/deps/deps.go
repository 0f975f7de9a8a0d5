// Package deps resolves and reports the external binaries hdrpress drives.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound reports that a required external binary could not be resolved.
var ErrNotFound = errors.New("binary not found")

// Requirement defines an external dependency hdrpress relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Resolve returns the absolute path for command, preferring the override
// when set and otherwise searching PATH. A failed lookup wraps ErrNotFound.
func Resolve(name, override string) (string, error) {
	command := strings.TrimSpace(override)
	if command == "" {
		command = name
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, command)
	}
	return resolved, nil
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}
