package ingest

import (
	"errors"

	"github.com/google/uuid"
)

// HintAvatar is the only category hint with a meaning; anything else falls through to MIME rules.
const HintAvatar = "avatar"

// ErrPayloadTooLarge is returned by an Extractor that gave up reading an oversized body.
var ErrPayloadTooLarge = errors.New("payload too large")

// UploadRequest lives for one ingestion call.
type UploadRequest struct {
	Payload      []byte
	MimeType     string
	FileName     string
	CategoryHint string
	ProjectID    *uuid.UUID
	TaskID       *uuid.UUID
}

func (r UploadRequest) Size() int64 { return int64(len(r.Payload)) }

// Extractor pulls the upload out of the transport. It runs only after the caller is authenticated.
type Extractor func() (UploadRequest, error)
