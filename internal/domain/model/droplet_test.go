package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeepFilter_Keeps(t *testing.T) {
	filter := KeepFilter{
		MemoryMB: []int{1024, 2048},
		VCPUs:    []int{1, 2},
		Regions:  []string{"nyc1", "fra1"},
	}

	tests := []struct {
		name    string
		droplet Droplet
		want    bool
	}{
		{name: "all dimensions match", droplet: Droplet{MemoryMB: 1024, VCPUs: 1, Region: "nyc1"}, want: true},
		{name: "memory outside list", droplet: Droplet{MemoryMB: 4096, VCPUs: 1, Region: "nyc1"}, want: false},
		{name: "vcpus outside list", droplet: Droplet{MemoryMB: 2048, VCPUs: 4, Region: "fra1"}, want: false},
		{name: "region outside list", droplet: Droplet{MemoryMB: 2048, VCPUs: 2, Region: "sfo3"}, want: false},
		{name: "zero value never kept", droplet: Droplet{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Keeps(tt.droplet))
		})
	}
}

func TestKeepFilter_EmptyFilterKeepsNothing(t *testing.T) {
	assert.False(t, KeepFilter{}.Keeps(Droplet{MemoryMB: 1024, VCPUs: 1, Region: "nyc1"}))
}
