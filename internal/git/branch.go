package git

import (
	"strings"
)

// DefaultBinary is the executable used when none is configured.
const DefaultBinary = "git"

// ShortRefFormat renders a ref without its refs/heads/ namespace.
const ShortRefFormat = "%(refname:short)"

// ListBranchesArgs returns the argv that lists local branches, one per line,
// in git's own enumeration order.
func ListBranchesArgs(bin string) []string {
	return []string{binary(bin), "branch", "--format=" + ShortRefFormat}
}

// DeleteBranchArgs returns the argv that force-deletes a local branch.
func DeleteBranchArgs(bin, name string) []string {
	return []string{binary(bin), "branch", "-D", name}
}

// ParseBranches turns list output into branch names.
// Lines are trimmed and empty ones dropped; everything else is passed
// through unvalidated, in the order git printed it.
func ParseBranches(stdout []byte) []string {
	names := []string{}
	for _, line := range strings.Split(string(stdout), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func binary(bin string) string {
	if bin == "" {
		return DefaultBinary
	}
	return bin
}
