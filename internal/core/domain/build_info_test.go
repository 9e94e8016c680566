package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestBuildInfo_Covers(t *testing.T) {
	info := &domain.BuildInfo{InputHash: "in", OutputHash: "out"}
	assert.True(t, info.CoversInput("in"))
	assert.False(t, info.CoversInput("out"))
	assert.True(t, info.CoversOutput("out"))
	assert.False(t, info.CoversOutput(""))

	var missing *domain.BuildInfo
	assert.False(t, missing.CoversInput("in"))
	assert.False(t, missing.CoversOutput("out"))
}
