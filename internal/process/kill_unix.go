//go:build !windows

package process

import "syscall"

// KillProcessGroup kills the browser started for PDF export together with its
// renderer and GPU helpers by signalling the process group (negative PID).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort: launcher.Kill already targets the main process.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
