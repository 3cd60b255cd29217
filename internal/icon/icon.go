// Package icon maps directory entries to the glyph drawn in their grid cell.
package icon

import (
	"path/filepath"
	"strings"

	"github.com/finchapp/finch/internal/fs"
)

// GlyphID identifies one of the built-in icon shapes.
type GlyphID int

const (
	GlyphUnknown GlyphID = iota
	GlyphFolder
	GlyphBundle
	GlyphText
	GlyphCode
	GlyphImage
	GlyphAudio
	GlyphVideo
	GlyphArchive
	GlyphDocument
)

var extGlyphs = map[string]GlyphID{
	".txt": GlyphText,
	".md":  GlyphText,
	".log": GlyphText,

	".go":   GlyphCode,
	".c":    GlyphCode,
	".h":    GlyphCode,
	".py":   GlyphCode,
	".js":   GlyphCode,
	".ts":   GlyphCode,
	".rs":   GlyphCode,
	".sh":   GlyphCode,
	".json": GlyphCode,
	".yaml": GlyphCode,
	".yml":  GlyphCode,
	".toml": GlyphCode,
	".html": GlyphCode,
	".css":  GlyphCode,

	".png":  GlyphImage,
	".jpg":  GlyphImage,
	".jpeg": GlyphImage,
	".gif":  GlyphImage,
	".webp": GlyphImage,
	".svg":  GlyphImage,
	".bmp":  GlyphImage,

	".mp3":  GlyphAudio,
	".wav":  GlyphAudio,
	".flac": GlyphAudio,
	".ogg":  GlyphAudio,
	".m4a":  GlyphAudio,

	".mp4":  GlyphVideo,
	".mkv":  GlyphVideo,
	".webm": GlyphVideo,
	".avi":  GlyphVideo,
	".mov":  GlyphVideo,

	".zip": GlyphArchive,
	".tar": GlyphArchive,
	".gz":  GlyphArchive,
	".xz":  GlyphArchive,
	".zst": GlyphArchive,
	".7z":  GlyphArchive,
	".rar": GlyphArchive,

	".pdf":  GlyphDocument,
	".doc":  GlyphDocument,
	".docx": GlyphDocument,
	".odt":  GlyphDocument,
	".xls":  GlyphDocument,
	".xlsx": GlyphDocument,
	".ods":  GlyphDocument,
	".epub": GlyphDocument,
}

// Classify picks the glyph for an entry. Kind wins over extension: a
// directory named photo.png is still a folder.
func Classify(e fs.Entry) GlyphID {
	if e.IsBundle {
		return GlyphBundle
	}
	if e.IsDir {
		return GlyphFolder
	}
	ext := strings.ToLower(filepath.Ext(e.Name))
	if g, ok := extGlyphs[ext]; ok {
		return g
	}
	return GlyphUnknown
}
