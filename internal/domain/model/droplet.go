package model

import "slices"

// Droplet is the subset of a DigitalOcean droplet that pruning decisions need.
type Droplet struct {
	ID       int
	Name     string
	MemoryMB int
	VCPUs    int
	Region   string
}

// KeepFilter lists the droplet shapes that survive a prune. A droplet is kept
// only when its memory, vCPU count and region all appear in the lists.
type KeepFilter struct {
	MemoryMB []int
	VCPUs    []int
	Regions  []string
}

// Keeps reports whether d matches every dimension of the filter.
func (f KeepFilter) Keeps(d Droplet) bool {
	return slices.Contains(f.MemoryMB, d.MemoryMB) &&
		slices.Contains(f.VCPUs, d.VCPUs) &&
		slices.Contains(f.Regions, d.Region)
}
