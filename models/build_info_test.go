package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuildInfo(t *testing.T) {
	b := NewBuildInfo("v1.2.0", "", "abc123")
	assert.Equal(t, BuildInfo{Version: "v1.2.0", Date: "N/A", Commit: "abc123"}, b)
	assert.Equal(t, "Build version: v1.2.0\nBuild date: N/A\nBuild commit: abc123", b.String())
}
