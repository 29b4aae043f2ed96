package ingest

import "project-manager-api/internal/domain/stored_file"

const WarningAvatarLinkFailed = "AVATAR_LINK_FAILED"

// Warning is a non-fatal side-effect failure reported next to a successful upload.
type Warning struct {
	Code    string
	Message string
}

type Result struct {
	File     *stored_file.StoredFile
	Warnings []Warning
}
