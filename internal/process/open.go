package process

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrEmptyTarget is returned by Open for an empty URL or path.
var ErrEmptyTarget = errors.New("nothing to open")

// Opener hands URLs and files to the desktop.
type Opener interface {
	Open(target string) error
}

// SystemOpener opens targets with the platform handler (open, xdg-open or
// the Windows URL protocol handler).
type SystemOpener struct{}

// Open starts the handler and returns without waiting for it.
func (SystemOpener) Open(target string) error {
	if target == "" {
		return ErrEmptyTarget
	}
	name, args := openCommand(target)
	cmd := exec.Command(name, args...) // #nosec G204 -- fixed handler, target is an argument
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	// Reap the handler; its exit status does not matter.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Compile-time interface check.
var _ Opener = SystemOpener{}
