package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPath(t *testing.T, p string) {
	prev := Path
	Path = p
	t.Cleanup(func() {
		Path = prev
	})
}

func TestReloadConfigWritesDefaults(t *testing.T) {
	p := path.Join(t.TempDir(), "asset-repo.yaml")
	withPath(t, p)

	c, err := reloadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8000, c.General.Port)
	assert.Equal(t, "public", c.Assets.RootDirectory)
	assert.Equal(t, DefaultCacheControl, c.Assets.CacheControl)
	assert.Equal(t, "file", c.Datastore.Type)

	_, err = os.Stat(p)
	assert.NoError(t, err)
}

func TestReloadConfigMergesDirectory(t *testing.T) {
	dir := t.TempDir()
	withPath(t, dir)

	require.NoError(t, os.WriteFile(path.Join(dir, "00-base.yaml"), []byte(`
repo:
  port: 9999
datastore:
  type: s3
  opts:
    endpoint: s3.example.org
    bucketName: site-assets
`), 0600))
	require.NoError(t, os.WriteFile(path.Join(dir, "10-override.yaml"), []byte(`
repo:
  port: 8123
assets:
  rootDirectory: /srv/site/public
`), 0600))

	c, err := reloadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8123, c.General.Port)
	assert.Equal(t, "127.0.0.1", c.General.BindAddress)
	assert.Equal(t, "/srv/site/public", c.Assets.RootDirectory)
	assert.Equal(t, "s3", c.Datastore.Type)
	assert.Equal(t, "site-assets", c.Datastore.Options["bucketName"])
}

func TestReloadConfigEnvironmentOverrides(t *testing.T) {
	p := path.Join(t.TempDir(), "asset-repo.yaml")
	withPath(t, p)
	t.Setenv("ASSET_REPO_ROOT", "/data/public")
	t.Setenv("ASSET_REPO_S3_ACCESS_KEY_ID", "key-id")
	t.Setenv("ASSET_REPO_S3_SECRET", "secret")

	c, err := reloadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/public", c.Assets.RootDirectory)
	assert.Equal(t, "key-id", c.Datastore.Options["accessKeyId"])
	assert.Equal(t, "secret", c.Datastore.Options["accessSecret"])
}

func TestReloadConfigRejectsBadYaml(t *testing.T) {
	p := path.Join(t.TempDir(), "asset-repo.yaml")
	withPath(t, p)
	require.NoError(t, os.WriteFile(p, []byte("repo: [not, a, map"), 0600))

	_, err := reloadConfig()
	assert.Error(t, err)
}
