package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ridgeline-tours/asset-repo/common"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAssetRoot(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckAssetRoot(dir))

	assert.Error(t, CheckAssetRoot(filepath.Join(dir, "missing")))

	f := filepath.Join(dir, "file.png")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0644))
	err := CheckAssetRoot(f)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDescribeDatastore(t *testing.T) {
	assert.Equal(t, "https://s3.example.org/assets", describeDatastore(config.DatastoreConfig{
		Type:    "s3",
		Options: map[string]string{"endpoint": "https://s3.example.org", "bucketName": "assets"},
	}))
	assert.Equal(t, "./uploads", describeDatastore(config.DatastoreConfig{
		Type:    "file",
		Options: map[string]string{"path": "./uploads"},
	}))
	assert.Equal(t, "(unknown)", describeDatastore(config.DatastoreConfig{Type: "ipfs"}))
}
