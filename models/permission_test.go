package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidResource(t *testing.T) {
	for _, r := range KnownResources {
		assert.True(t, ValidResource(r), "resource %q", r)
	}

	assert.False(t, ValidResource("appointments"))
	assert.False(t, ValidResource("Facilities"), "resource names are lowercase")
	assert.False(t, ValidResource(""))
}
