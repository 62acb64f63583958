package types_test

import (
	"testing"

	"github.com/arthur-debert/unbox/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	t.Run("duplicates collapse", func(t *testing.T) {
		info := types.NewVersionInfo("libssl", "libssl", "libz")
		assert.Equal(t, []string{"libssl", "libz"}, info.Dependencies())
	})

	t.Run("add and remove report change", func(t *testing.T) {
		info := types.NewVersionInfo()

		assert.True(t, info.AddDependency("libssl"))
		assert.False(t, info.AddDependency("libssl"))
		assert.True(t, info.HasDependency("libssl"))

		assert.True(t, info.RemoveDependency("libssl"))
		assert.False(t, info.RemoveDependency("libssl"))
		assert.False(t, info.HasDependency("libssl"))
	})

	t.Run("clone is independent", func(t *testing.T) {
		original := types.NewVersionInfo("libssl")
		clone := original.Clone()

		clone.AddDependency("libz")
		original.RemoveDependency("libssl")

		assert.Equal(t, []string{}, original.Dependencies())
		assert.Equal(t, []string{"libssl", "libz"}, clone.Dependencies())
	})
}

func TestResource(t *testing.T) {
	resource := &types.Resource{
		Name:           "notes.txt",
		StorageDir:     "abc",
		CurrentVersion: "1.0",
		Versions: map[string]*types.VersionInfo{
			"2.0": types.NewVersionInfo(),
			"1.0": types.NewVersionInfo(),
		},
	}

	assert.True(t, resource.HasVersion("1.0"))
	assert.False(t, resource.HasVersion("3.0"))
	assert.Equal(t, []string{"1.0", "2.0"}, resource.VersionLabels())
}
