//go:build windows

package gazeshim

import (
	"errors"
	"os"

	"github.com/shayne/go-winpeg"
	"golang.org/x/sys/windows"
)

// bindProcessGroup puts the bridge process in a kill-on-close job object.
// The job handle is deliberately left open for the life of the process; the
// host closing us closes it, which tears the bridge down.
func bindProcessGroup(p *os.Process) error {
	if p == nil || p.Pid == 0 {
		return errors.New("process not started")
	}

	g, err := winpeg.NewProcessExitGroup()
	if err != nil {
		return err
	}

	// Try the winpeg path first.
	if err := g.AddProcess(p); err == nil {
		return nil
	}

	// Fallback: open handle by PID (avoids unsafe handle layout issues).
	handle, err := windows.OpenProcess(
		windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE|windows.PROCESS_QUERY_LIMITED_INFORMATION,
		false,
		uint32(p.Pid),
	)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(handle)

	return windows.AssignProcessToJobObject(windows.Handle(g), handle)
}
