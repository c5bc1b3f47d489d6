package assets

import (
	"path"
	"strings"
)

type Kind string

const (
	ImageKind   Kind = "image"
	VideoKind   Kind = "video"
	UnknownKind Kind = ""
)

const DefaultContentType = "application/octet-stream"

var imageTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"ico":  "image/x-icon",
}

var videoTypes = map[string]string{
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"mkv":  "video/x-matroska",
	"flv":  "video/x-flv",
	"wmv":  "video/x-ms-wmv",
	"m4v":  "video/x-m4v",
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// KindOf classifies a file name by its extension.
func KindOf(name string) Kind {
	ext := extension(name)
	if _, ok := imageTypes[ext]; ok {
		return ImageKind
	}
	if _, ok := videoTypes[ext]; ok {
		return VideoKind
	}
	return UnknownKind
}

func IsAsset(name string) bool {
	return KindOf(name) != UnknownKind
}

// ContentTypeFor never fails: anything outside the table is treated as opaque binary.
func ContentTypeFor(name string) string {
	ext := extension(name)
	if ct, ok := imageTypes[ext]; ok {
		return ct
	}
	if ct, ok := videoTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}
