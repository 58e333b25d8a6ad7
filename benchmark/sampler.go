// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package benchmark

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// Sample is one point-in-time reading of the current process's resource
// usage, taken immediately before and after an optimize run so a caller
// can report the delta.
type Sample struct {
	RSSBytes   uint64
	CPUPercent float64
	NumFDs     int32
}

// TakeSample reads the current process's resource usage. Any field gopsutil
// cannot read on the host platform is left at its zero value rather than
// failing the whole sample.
func TakeSample() Sample {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Sample{}
	}

	var s Sample
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		s.RSSBytes = mem.RSS
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		s.CPUPercent = cpu
	}
	if fds, err := proc.NumFDs(); err == nil {
		s.NumFDs = fds
	}
	return s
}

// Delta reports how much usage grew between a before and after sample.
func Delta(before, after Sample) Sample {
	return Sample{
		RSSBytes:   after.RSSBytes - before.RSSBytes,
		CPUPercent: after.CPUPercent - before.CPUPercent,
		NumFDs:     after.NumFDs - before.NumFDs,
	}
}
