package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/domain/ingest"
	domainFile "project-manager-api/internal/domain/stored_file"
	domainUser "project-manager-api/internal/domain/user"
)

type FakeTokenVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (ports.Identity, error)
}

func (f *FakeTokenVerifier) Verify(ctx context.Context, token string) (ports.Identity, error) {
	if f.VerifyFunc == nil {
		return ports.Identity{}, errors.New("not used")
	}
	return f.VerifyFunc(ctx, token)
}

type FakeFileService struct {
	IngestFunc    func(ctx context.Context, credential string, extract ingest.Extractor) (*ingest.Result, error)
	FindFilesFunc func(ctx context.Context, userUUID domainUser.UUID, filter domainFile.Filter) (domainFile.StoredFiles, error)
}

func (f *FakeFileService) Ingest(ctx context.Context, credential string, extract ingest.Extractor) (*ingest.Result, error) {
	if f.IngestFunc == nil {
		return nil, errors.New("not used")
	}
	return f.IngestFunc(ctx, credential, extract)
}

func (f *FakeFileService) FindFiles(ctx context.Context, userUUID domainUser.UUID, filter domainFile.Filter) (domainFile.StoredFiles, error) {
	if f.FindFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindFilesFunc(ctx, userUUID, filter)
}

type FakeUserService struct {
	FindUserByIDFunc func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}

type filePart struct {
	name        string
	contentType string
	content     []byte
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipartReq(t *testing.T, r *gin.Engine, path string, fields map[string]string, files []filePart, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.name))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}
