package domain

import (
	"path/filepath"
	"strings"
)

const (
	// CompressedPrefix is prepended to the filename of a transcoded video
	CompressedPrefix = "compressed_"

	// WorkspacePrefix names the temporary directory of every upload run
	WorkspacePrefix = "media-"

	defaultContentType = "application/octet-stream"
)

// Classification is the media kind and content type resolved for an extension
type Classification struct {
	Kind        MediaKind
	ContentType string
}

// mediaTypes is a fixed table and does not rely on the OS mime database.
var mediaTypes = map[string]Classification{
	// Images
	"jpg":  {MediaKindImage, "image/jpeg"},
	"jpeg": {MediaKindImage, "image/jpeg"},
	"png":  {MediaKindImage, "image/png"},
	"heic": {MediaKindImage, "image/heic"},
	"heif": {MediaKindImage, "image/heif"},
	"webp": {MediaKindImage, "image/webp"},
	"gif":  {MediaKindImage, "image/gif"},

	// Videos
	"mp4":  {MediaKindVideo, "video/mp4"},
	"mov":  {MediaKindVideo, "video/quicktime"},
	"avi":  {MediaKindVideo, "video/x-msvideo"},
	"webm": {MediaKindVideo, "video/webm"},
	"mkv":  {MediaKindVideo, "video/x-matroska"},

	// Documents
	"pdf": {MediaKindOther, "application/pdf"},
}

// Classify maps an extension (without dot) to its media kind and content type.
// Unknown extensions are MediaKindOther with a generic binary type.
func Classify(ext string) Classification {
	if c, ok := mediaTypes[strings.ToLower(ext)]; ok {
		return c
	}
	return Classification{Kind: MediaKindOther, ContentType: defaultContentType}
}

// Extension returns the lower-cased extension of filename without the dot
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// FolderFor returns the storage folder prefix for an extension
func FolderFor(ext string) string {
	ext = strings.ToLower(ext)
	switch Classify(ext).Kind {
	case MediaKindVideo:
		return "video/"
	case MediaKindImage:
		return "images/"
	case MediaKindOther:
		if ext == "pdf" {
			return "documents/"
		}
		return "others/"
	default:
		return "others/"
	}
}

// StorageKey composes the object key of a published file
func StorageKey(filename string) string {
	return FolderFor(Extension(filename)) + filename
}
