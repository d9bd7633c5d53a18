//go:build !windows

package gazeshim

import "os"

// bindProcessGroup is a no-op off Windows; go-plugin's own lifecycle
// management is enough there.
func bindProcessGroup(p *os.Process) error {
	return nil
}
