package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	testCases := []struct {
		name string
		info BuildInfo
		want string
	}{
		{"no commit", BuildInfo{Version: "dev"}, "dev"},
		{"short commit", BuildInfo{Version: "v1.0.0", GitCommit: "abc"}, "v1.0.0"},
		{"commit", BuildInfo{Version: "v1.0.0", GitCommit: "3f2a9c1d0e"}, "v1.0.0 (3f2a9c1)"},
		{"dirty", BuildInfo{Version: "dev", GitCommit: "3f2a9c1d0e", Dirty: true}, "dev (3f2a9c1) (dirty)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.info.Short())
		})
	}
}

func TestIsRelease(t *testing.T) {
	assert.True(t, BuildInfo{Version: "v1.2.0"}.IsRelease())
	assert.False(t, BuildInfo{Version: "dev"}.IsRelease())
	assert.False(t, BuildInfo{Version: "dev-3f2a9c1"}.IsRelease())
	assert.False(t, BuildInfo{Version: "v1.2.1-0.20250101000000-3f2a9c1d0e2b"}.IsRelease())
}

func TestGet(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	info := Get()
	assert.Equal(t, "v9.9.9", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
