package config

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Requirements are minimum host resources. Memory and Storage are size
// strings such as "4G".
type Requirements struct {
	CPUs    int    `json:"cpus,omitempty"`
	Memory  string `json:"memory,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// HostResources are the resources the host actually has. Zero means
// unknown and is never reported as unmet.
type HostResources struct {
	CPUs    int
	Memory  uint64
	Storage uint64
}

// RequirementsResult contains the result of a requirements check.
type RequirementsResult struct {
	Satisfied bool
	Warnings  []string
	Errors    []string
}

// CheckRequirements checks res against reqs. A nil reqs is always
// satisfied.
func CheckRequirements(reqs *Requirements, res HostResources) *RequirementsResult {
	result := &RequirementsResult{Satisfied: true}
	if reqs == nil {
		return result
	}

	if reqs.CPUs > 0 {
		if res.CPUs == 0 {
			result.Warnings = append(result.Warnings, "Could not determine CPU count")
		} else if res.CPUs < reqs.CPUs {
			result.Satisfied = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("CPU requirement not met: need %d cores, host has %d", reqs.CPUs, res.CPUs))
		}
	}

	checkSize(result, "Memory", reqs.Memory, res.Memory)
	checkSize(result, "Storage", reqs.Storage, res.Storage)

	return result
}

func checkSize(result *RequirementsResult, label, want string, have uint64) {
	if want == "" {
		return
	}

	reqBytes, err := parseSizeValue(want)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not parse %s requirement '%s': %v", label, want, err))
		return
	}
	if have == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not determine available %s", label))
		return
	}
	if have < uint64(reqBytes) {
		result.Satisfied = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s requirement not met: need %s, host has %s",
				label, want, humanize.IBytes(have)))
	}
}
