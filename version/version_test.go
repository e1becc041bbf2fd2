package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBuildInfo(t *testing.T) {
	base := Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"}
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-04T10:00:00Z"},
		},
	}

	got := fromBuildInfo(base, bi)
	assert.Equal(t, "v0.4.1", got.Version)
	assert.Equal(t, "0123456789abcdef", got.CommitHash)
	assert.Equal(t, "2026-03-04T10:00:00Z", got.BuildTime)
}

func TestFromBuildInfoKeepsLdflags(t *testing.T) {
	base := Info{CommitHash: "feedbeef", BuildTime: "yesterday", Version: "v1.0.0"}
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}},
	}
	assert.Equal(t, base, fromBuildInfo(base, bi))

	dev := Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"}
	assert.Equal(t, "dev", fromBuildInfo(dev, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).Version)
}

func TestString(t *testing.T) {
	tagged := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-03-04", Version: "v0.4.1"}
	assert.Equal(t, "classgen 0.4.1 (commit 0123456, built 2026-03-04)", tagged.String())
	require.NotNil(t, tagged.Semver())
	assert.Equal(t, uint64(4), tagged.Semver().Minor())

	dev := Info{CommitHash: "dev", BuildTime: "unknown", Version: "dev"}
	assert.Equal(t, "classgen dev (commit dev, built unknown)", dev.String())
	assert.Nil(t, dev.Semver())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.NotEmpty(t, info.Version)
}
