package backend

import (
	"time"

	"github.com/lahfir/agent-desktop-sub000/internal/desktoperr"
	pkgelement "github.com/lahfir/agent-desktop-sub000/pkg/element"
	"github.com/shirou/gopsutil/v4/process"
)

func newBackend(finder *pkgelement.Finder) *Backend {
	return &Backend{finder: finder}
}

// terminateProcess asks pid to quit and escalates to a hard kill if it
// is still alive after a short grace period. gopsutil/v4/process is
// already part of this module's dependency graph (pulled in indirectly
// by robotgo's display handling); CloseApp is the one capability this
// backend needs that pkg/element's Finder has no notion of, so it is
// promoted to a direct import here rather than shelled out to the OS.
func terminateProcess(pid int) error {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return desktoperr.Newf(desktoperr.AppNotFound, "process %d is no longer running", pid)
	}
	if err := proc.Terminate(); err != nil {
		if killErr := proc.Kill(); killErr != nil {
			return desktoperr.Newf(desktoperr.ActionFailed, "failed to close process %d: %v", pid, killErr)
		}
		return nil
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if running, _ := proc.IsRunning(); !running {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	if running, _ := proc.IsRunning(); running {
		if err := proc.Kill(); err != nil {
			return desktoperr.Newf(desktoperr.ActionFailed, "failed to close process %d: %v", pid, err)
		}
	}
	return nil
}
