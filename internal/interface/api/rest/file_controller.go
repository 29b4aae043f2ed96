package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/domain/ingest"
	domain "project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/domain/user"
	"project-manager-api/internal/interface/api/rest/dto/stored_file"
	"project-manager-api/internal/interface/api/rest/middleware"
	"project-manager-api/internal/interface/api/rest/validator"
)

const (
	// room for multipart boundaries and the small text fields
	multipartSlack = int64(1 << 20)
	maxFieldBytes  = int64(256)

	formFile      = "file"
	formCategory  = "category"
	formProjectID = "project_id"
	formTaskID    = "task_id"
)

type FileController struct {
	fileService    ports.FileService
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewFileController(
	r gin.IRouter,
	fileService ports.FileService,
	logger *zap.Logger,
	verifier ports.TokenVerifier,
	limiter *middleware.IPRateLimiter,
	maxUploadBytes int64,
) *FileController {
	fc := &FileController{
		fileService:    fileService,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}

	// the upload authenticates inside the pipeline, before the body is read
	r.POST(RouteFiles, limiter.Handler(), fc.UploadFileHandler)
	r.GET(RouteFiles, middleware.AuthMiddleware(verifier), fc.GetFilesHandler)

	return fc
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	res, err := fc.fileService.Ingest(
		c.Request.Context(),
		middleware.BearerToken(c),
		fc.extractor(c),
	)
	if err != nil {
		if abortWithIngestError(c, err) {
			return
		}
		abortWithError(c, http.StatusInternalServerError, codeInternal, "failed to upload a file")
		fc.logger.Error("Ingest() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, stored_file.ToUploadResponse(*res))
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, string(ingest.KindBadRequest), err.Error())
		return
	}
	projectID, err := validator.OptionalUUID(formProjectID, c.Query(formProjectID))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, string(ingest.KindBadRequest), err.Error())
		return
	}
	taskID, err := validator.OptionalUUID(formTaskID, c.Query(formTaskID))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, string(ingest.KindBadRequest), err.Error())
		return
	}

	userID := c.MustGet(middleware.CtxUserID).(uuid.UUID)
	files, err := fc.fileService.FindFiles(c.Request.Context(), userID, domain.Filter{
		ProjectID: projectID,
		TaskID:    taskID,
		Page:      page,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, codeInternal, "failed to get files")
		fc.logger.Error("FindFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, stored_file.ResponseData{
		Data: stored_file.ToResponseStoredFiles(files),
	})
}

// extractor streams the multipart body part by part; the file is never held
// beyond maxUploadBytes+1 bytes.
func (fc *FileController) extractor(c *gin.Context) ingest.Extractor {
	return func() (ingest.UploadRequest, error) {
		var req ingest.UploadRequest

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, fc.maxUploadBytes+multipartSlack)
		mr, err := c.Request.MultipartReader()
		if err != nil {
			return req, err
		}

		seenFile := false
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return req, bodyErr(err)
			}

			switch part.FormName() {
			case formFile:
				if seenFile {
					_ = part.Close()
					return req, errors.New("only one file per request is accepted")
				}
				seenFile = true
				data, err := io.ReadAll(io.LimitReader(part, fc.maxUploadBytes+1))
				if err != nil {
					return req, bodyErr(err)
				}
				if int64(len(data)) > fc.maxUploadBytes {
					return req, ingest.ErrPayloadTooLarge
				}
				req.Payload = data
				req.FileName = part.FileName()
				req.MimeType = part.Header.Get("Content-Type")
			case formCategory:
				v, err := readField(part)
				if err != nil {
					return req, err
				}
				req.CategoryHint = v
			case formProjectID:
				v, err := readField(part)
				if err != nil {
					return req, err
				}
				if req.ProjectID, err = validator.OptionalUUID(formProjectID, v); err != nil {
					return req, err
				}
			case formTaskID:
				v, err := readField(part)
				if err != nil {
					return req, err
				}
				if req.TaskID, err = validator.OptionalUUID(formTaskID, v); err != nil {
					return req, err
				}
			}
			_ = part.Close()
		}

		return req, nil
	}
}

type formPart interface {
	io.Reader
	FormName() string
}

func readField(p formPart) (string, error) {
	b, err := io.ReadAll(io.LimitReader(p, maxFieldBytes+1))
	if err != nil {
		return "", bodyErr(err)
	}
	if int64(len(b)) > maxFieldBytes {
		return "", fmt.Errorf("field %s is too long", p.FormName())
	}
	return strings.TrimSpace(string(b)), nil
}

func bodyErr(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: %v", ingest.ErrPayloadTooLarge, err)
	}
	return err
}
