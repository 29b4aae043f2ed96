package services

import (
	"strings"

	"project-manager-api/internal/domain/ingest"
	domain "project-manager-api/internal/domain/stored_file"
)

var (
	documentMimeTypes = map[string]struct{}{
		"application/pdf":    {},
		"application/msword": {},
	}
	documentMimeMarkers = []string{"wordprocessingml", "spreadsheetml"}
	archiveMimeTypes    = map[string]struct{}{
		"application/zip":              {},
		"application/x-rar-compressed": {},
		"application/x-7z-compressed":  {},
	}
)

// Classify maps a declared MIME type and an optional hint to a category.
// It never fails: unknown or empty types end up as OTHER.
func Classify(mimeType, hint string) domain.Category {
	if hint == ingest.HintAvatar {
		return domain.CategoryAvatar
	}

	mt := normalizeMimeType(mimeType)
	if strings.HasPrefix(mt, "image/") {
		return domain.CategoryImage
	}
	if _, ok := documentMimeTypes[mt]; ok {
		return domain.CategoryDocument
	}
	for _, marker := range documentMimeMarkers {
		if strings.Contains(mt, marker) {
			return domain.CategoryDocument
		}
	}
	if _, ok := archiveMimeTypes[mt]; ok {
		return domain.CategoryArchive
	}

	return domain.CategoryOther
}

// PartitionOf is total; DOCUMENT and ARCHIVE share a partition.
func PartitionOf(c domain.Category) domain.Partition {
	switch c {
	case domain.CategoryAvatar:
		return domain.PartitionAvatars
	case domain.CategoryImage:
		return domain.PartitionImages
	case domain.CategoryDocument, domain.CategoryArchive:
		return domain.PartitionDocuments
	default:
		return domain.PartitionOther
	}
}

// "Image/PNG; charset=binary" -> "image/png"
func normalizeMimeType(mimeType string) string {
	mt, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
