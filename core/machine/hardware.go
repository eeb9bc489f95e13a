// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package machine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
)

// NotAvailable is displayed for hardware values that are unknown.
const NotAvailable = "N/A"

const (
	archKey     = "arch"
	coresKey    = "cpu-cores"
	memKey      = "mem"
	rootDiskKey = "root-disk"
)

// Hardware describes the characteristics of a machine. A nil field means
// the value is unknown. Sizes are in MiB.
type Hardware struct {
	Arch     *string
	CPUCores *uint64
	Mem      *uint64
	RootDisk *uint64
}

// ParseHardware parses a juju hardware string such as
// "arch=amd64 cpu-cores=4 mem=8192M root-disk=20480M". Unrecognised keys
// are ignored so that newer providers can add characteristics.
func ParseHardware(s string) (Hardware, error) {
	var hw Hardware
	for _, field := range strings.Fields(s) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Hardware{}, errors.NotValidf("hardware characteristic %q", field)
		}
		switch key {
		case archKey:
			if value == "" {
				return Hardware{}, errors.NotValidf("empty arch")
			}
			arch := value
			hw.Arch = &arch
		case coresKey:
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return Hardware{}, errors.NotValidf("%s value %q", key, value)
			}
			hw.CPUCores = &n
		case memKey:
			n, err := parseSize(value)
			if err != nil {
				return Hardware{}, errors.Annotatef(err, "parsing %s", key)
			}
			hw.Mem = &n
		case rootDiskKey:
			n, err := parseSize(value)
			if err != nil {
				return Hardware{}, errors.Annotatef(err, "parsing %s", key)
			}
			hw.RootDisk = &n
		}
	}
	return hw, nil
}

var sizeMultipliers = map[byte]float64{
	'M': 1,
	'G': 1024,
	'T': 1024 * 1024,
	'P': 1024 * 1024 * 1024,
}

// parseSize parses a size with an optional M, G, T or P suffix and returns
// the value in MiB.
func parseSize(s string) (uint64, error) {
	if s == "" {
		return 0, errors.NotValidf("empty size")
	}
	mult := 1.0
	if m, ok := sizeMultipliers[s[len(s)-1]]; ok {
		mult = m
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, errors.NotValidf("size %q", s)
	}
	return uint64(v * mult), nil
}

// String returns the hardware in the same form ParseHardware accepts.
func (hw Hardware) String() string {
	var parts []string
	if hw.Arch != nil {
		parts = append(parts, fmt.Sprintf("%s=%s", archKey, *hw.Arch))
	}
	if hw.CPUCores != nil {
		parts = append(parts, fmt.Sprintf("%s=%d", coresKey, *hw.CPUCores))
	}
	if hw.Mem != nil {
		parts = append(parts, fmt.Sprintf("%s=%dM", memKey, *hw.Mem))
	}
	if hw.RootDisk != nil {
		parts = append(parts, fmt.Sprintf("%s=%dM", rootDiskKey, *hw.RootDisk))
	}
	return strings.Join(parts, " ")
}

// ArchString returns the architecture or NotAvailable.
func (hw Hardware) ArchString() string {
	if hw.Arch == nil {
		return NotAvailable
	}
	return *hw.Arch
}

// CPUString returns the number of cores or NotAvailable.
func (hw Hardware) CPUString() string {
	if hw.CPUCores == nil {
		return NotAvailable
	}
	return strconv.FormatUint(*hw.CPUCores, 10)
}

// MemString returns the memory in human readable form, or NotAvailable.
func (hw Hardware) MemString() string {
	return mibString(hw.Mem)
}

// StorageString returns the root disk size in human readable form, or
// NotAvailable.
func (hw Hardware) StorageString() string {
	return mibString(hw.RootDisk)
}

func mibString(v *uint64) string {
	if v == nil {
		return NotAvailable
	}
	return humanize.IBytes(*v * humanize.MiByte)
}
