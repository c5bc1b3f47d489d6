package assets

import (
	"path"
	"strings"
)

// RootPrefix namespaces files that live directly in the asset root.
const RootPrefix = "static"

// Entry is one file to be migrated. PublicPath is relative to the asset root and always
// starts with a slash.
type Entry struct {
	PublicPath  string `json:"publicPath"`
	StoragePath string `json:"storagePath"`
}

// NormalizePublicPath cleans a caller-supplied public path into the "/a/b.png" form.
// Paths escaping the root ("/../x") are clamped to the root by path.Clean.
func NormalizePublicPath(publicPath string) string {
	return path.Clean("/" + strings.ReplaceAll(publicPath, "\\", "/"))
}

// StoragePathFor derives the object key for a public path: root files go under
// RootPrefix, nested files keep their folder structure.
func StoragePathFor(publicPath string) string {
	p := strings.TrimPrefix(NormalizePublicPath(publicPath), "/")
	if !strings.Contains(p, "/") {
		return RootPrefix + "/" + p
	}
	return p
}

// FolderLabel is the parent folder of a public path without the leading slash, or "/"
// for files in the asset root.
func FolderLabel(publicPath string) string {
	dir := path.Dir(NormalizePublicPath(publicPath))
	if dir == "/" {
		return "/"
	}
	return strings.TrimPrefix(dir, "/")
}

func isRootLevel(publicPath string) bool {
	return strings.Count(NormalizePublicPath(publicPath), "/") == 1
}
