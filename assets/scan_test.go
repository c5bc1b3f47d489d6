package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
)

func testContext() rcontext.RequestContext {
	logger, _ := test.NewNullLogger()
	return rcontext.Background(config.NewDefaultMainConfig(), logrus.NewEntry(logger))
}

func writeTree(t *testing.T, root string, files ...string) {
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("content of "+f), 0644))
	}
}

type ScanTestSuite struct {
	suite.Suite
	root string
}

func (s *ScanTestSuite) SetupTest() {
	s.root = s.T().TempDir()
	writeTree(s.T(), s.root,
		"logo.png",
		"favicon.ICO",
		"robots.txt",
		"manifest.json",
		".gitkeep",
		".DS_Store",
		".hidden.png",
		"team/alice.jpg",
		"team/bob.jpeg",
		"team/notes.md",
		"rides/baja/hero.webp",
		"rides/baja/trailer.mp4",
		"rides/baja/.gitkeep",
		"videos/intro.MOV",
		".cache/thumb.png",
		".git/objects/pack.png",
	)
}

func (s *ScanTestSuite) scan() *ScanResult {
	res, err := Scan(testContext(), s.root)
	s.Require().NoError(err)
	return res
}

func (s *ScanTestSuite) publicPaths(res *ScanResult) []string {
	paths := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		paths = append(paths, e.PublicPath)
	}
	return paths
}

func (s *ScanTestSuite) TestFindsOnlyAssets() {
	res := s.scan()
	s.Equal([]string{
		"/favicon.ICO",
		"/logo.png",
		"/rides/baja/hero.webp",
		"/rides/baja/trailer.mp4",
		"/team/alice.jpg",
		"/team/bob.jpeg",
		"/videos/intro.MOV",
	}, s.publicPaths(res))
}

func (s *ScanTestSuite) TestExcludesNonAssetExtensions() {
	for _, e := range s.scan().Entries {
		s.NotEqual("/robots.txt", e.PublicPath)
		s.NotEqual("/manifest.json", e.PublicPath)
		s.NotEqual("/team/notes.md", e.PublicPath)
	}
}

func (s *ScanTestSuite) TestSkipsHiddenDirectoriesAndDotfiles() {
	for _, e := range s.scan().Entries {
		s.NotContains(e.PublicPath, "/.cache/")
		s.NotContains(e.PublicPath, "/.git/")
		s.NotEqual("/.hidden.png", e.PublicPath)
	}
}

func (s *ScanTestSuite) TestStoragePaths() {
	keys := make(map[string]string)
	for _, e := range s.scan().Entries {
		keys[e.PublicPath] = e.StoragePath
	}
	s.Equal("static/logo.png", keys["/logo.png"])
	s.Equal("static/favicon.ICO", keys["/favicon.ICO"])
	s.Equal("team/alice.jpg", keys["/team/alice.jpg"])
	s.Equal("rides/baja/trailer.mp4", keys["/rides/baja/trailer.mp4"])
}

func (s *ScanTestSuite) TestDeterministic() {
	first := s.scan()
	second := s.scan()
	s.Equal(first.Entries, second.Entries)
	s.Equal(first.Breakdown, second.Breakdown)
}

func (s *ScanTestSuite) TestBreakdown() {
	res := s.scan()
	b := res.Breakdown
	s.Equal(len(res.Entries), b.Total)
	s.Equal(2, b.Root)
	s.Equal(5, b.Subfolders)
	s.Equal(b.Total, b.Root+b.Subfolders)

	sum := 0
	for _, n := range b.PerFolder {
		sum += n
	}
	s.Equal(b.Total, sum)
	s.Equal(map[string]int{
		"/":          2,
		"team":       2,
		"rides/baja": 2,
		"videos":     1,
	}, b.PerFolder)
}

func (s *ScanTestSuite) TestCountsBytes() {
	res := s.scan()
	var expected int64
	for _, e := range res.Entries {
		expected += int64(len("content of " + e.PublicPath[1:]))
	}
	s.Equal(expected, res.TotalBytes)
}

func (s *ScanTestSuite) TestSkipsSymlinks() {
	err := os.Symlink(filepath.Join(s.root, "logo.png"), filepath.Join(s.root, "linked.png"))
	if err != nil {
		s.T().Skip("symlinks unsupported: ", err)
	}
	for _, e := range s.scan().Entries {
		s.NotEqual("/linked.png", e.PublicPath)
	}
}

func (s *ScanTestSuite) TestFailingDirectoryReadIsIsolated() {
	team := filepath.Join(s.root, "team")
	original := readDir
	readDir = func(name string) ([]os.DirEntry, error) {
		if name == team {
			return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
		}
		return original(name)
	}
	defer func() { readDir = original }()

	res := s.scan()
	s.Equal([]string{"team"}, res.SkippedDirs)
	s.Equal([]string{
		"/favicon.ICO",
		"/logo.png",
		"/rides/baja/hero.webp",
		"/rides/baja/trailer.mp4",
		"/videos/intro.MOV",
	}, s.publicPaths(res))
	s.Equal(5, res.Breakdown.Total)
	s.NotContains(res.Breakdown.PerFolder, "team")
}

func (s *ScanTestSuite) TestUnreadableDirectoryIsIsolated() {
	if os.Geteuid() == 0 {
		s.T().Skip("permissions are not enforced for root")
	}
	locked := filepath.Join(s.root, "team")
	s.Require().NoError(os.Chmod(locked, 0000))
	defer os.Chmod(locked, 0755)

	res := s.scan()
	s.Equal([]string{"team"}, res.SkippedDirs)
	s.Equal([]string{
		"/favicon.ICO",
		"/logo.png",
		"/rides/baja/hero.webp",
		"/rides/baja/trailer.mp4",
		"/videos/intro.MOV",
	}, s.publicPaths(res))
}

func (s *ScanTestSuite) TestDoesNotModifyTree() {
	before := make([]string, 0)
	_ = filepath.Walk(s.root, func(p string, info os.FileInfo, err error) error {
		before = append(before, p)
		return nil
	})
	s.scan()
	after := make([]string, 0)
	_ = filepath.Walk(s.root, func(p string, info os.FileInfo, err error) error {
		after = append(after, p)
		return nil
	})
	s.Equal(before, after)
}

func TestScanTestSuite(t *testing.T) {
	suite.Run(t, new(ScanTestSuite))
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(testContext(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "logo.png")
	_, err := Scan(testContext(), filepath.Join(root, "logo.png"))
	assert.Error(t, err)
}

func TestScanEmptyRoot(t *testing.T) {
	res, err := Scan(testContext(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Equal(t, 0, res.Breakdown.Total)
	assert.Empty(t, res.Breakdown.PerFolder)
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "logo.png", "team/alice.jpg")

	ctx := testContext()
	cancelled, cancel := context.WithCancel(ctx.Context)
	cancel()
	ctx.Context = cancelled

	_, err := Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "logo.png", "logo-draft.png", "drafts/hero.jpg", "team/alice.jpg")

	ctx := testContext()
	ctx.Config.Assets.Exclude = []string{"*-draft.*", "/drafts/*"}

	res, err := Scan(ctx, root)
	require.NoError(t, err)

	paths := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		paths = append(paths, e.PublicPath)
	}
	assert.Equal(t, []string{"/logo.png", "/team/alice.jpg"}, paths)
}
