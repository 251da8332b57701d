package engine

import (
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// psInspector looks the engine up in the OS process table.
type psInspector struct{}

// NewInspector returns the process-table backed Inspector.
func NewInspector() Inspector { return psInspector{} }

func (psInspector) FindProcess(name string) (int, bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, false, err
	}
	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			// Processes can exit between listing and inspection.
			continue
		}
		if strings.EqualFold(n, name) {
			return int(p.Pid), true, nil
		}
	}
	return 0, false, nil
}
