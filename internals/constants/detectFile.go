package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeImage   = 1
	FileTypeUnknown = 99
)

// DetectFileTypeFromExt classifies an upload by its extension; content is sniffed separately.
func DetectFileTypeFromExt(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileTypeImage
	default:
		return FileTypeUnknown
	}
}
