package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"tastelocal/config"
	"tastelocal/internal/delivery/http/response"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/usecase"
	"tastelocal/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MediaHandlerParams holds dependencies for MediaHandler, injected by Fx.
type MediaHandlerParams struct {
	fx.In

	MediaUC usecase.MediaUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// MediaHandler handles image uploads and the business gallery.
type MediaHandler struct {
	mediaUC  usecase.MediaUsecase
	maxBytes int64
	logger   *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler
func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{
		mediaUC:  params.MediaUC,
		maxBytes: params.Config.Blob.MaxUploadBytes,
		logger:   params.Logger,
	}
}

// AddMediaForm represents the non-file parts of a gallery upload
type AddMediaForm struct {
	Type        string `form:"type" validate:"required,oneof=photo video"`
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description" validate:"max=1000"`
	URL         string `form:"url" validate:"omitempty,url"`
}

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage handles POST /dashboard/uploads
func (h *MediaHandler) UploadImage(c echo.Context) error {
	store, err := dashboardStore(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "MISSING_FILE", "Multipart field 'file' is required")
	}
	upload, err := h.readUpload(fh)
	if err != nil {
		return err
	}

	url, err := h.mediaUC.UploadImage(c.Request().Context(), store.ID(), upload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, UploadResponse{URL: url}, "Image uploaded")
}

// AddMedia handles POST /dashboard/media. The file part is optional when a
// url is given, so hosted videos can be posted as plain JSON.
func (h *MediaHandler) AddMedia(c echo.Context) error {
	store, err := dashboardStore(c)
	if err != nil {
		return err
	}

	var form AddMediaForm
	if err := c.Bind(&form); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid media input")
	}
	if err := c.Validate(&form); err != nil {
		return response.ValidationError(c, err.Error())
	}

	input := &usecase.AddMediaInput{
		Type:        entity.MediaType(form.Type),
		Title:       form.Title,
		Description: form.Description,
		URL:         form.URL,
	}
	if fh, err := c.FormFile("file"); err == nil {
		if input.File, err = h.readUpload(fh); err != nil {
			return err
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return response.BindingError(c, "INVALID_INPUT", "Invalid multipart body")
	}

	item, err := h.mediaUC.AddMedia(c.Request().Context(), store, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Media added")
}

// DeleteMedia handles DELETE /dashboard/media/:mediaId
func (h *MediaHandler) DeleteMedia(c echo.Context) error {
	store, err := dashboardStore(c)
	if err != nil {
		return err
	}

	if err := h.mediaUC.DeleteMedia(c.Request().Context(), store, c.Param("mediaId")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *MediaHandler) readUpload(fh *multipart.FileHeader) (*usecase.ImageUpload, error) {
	if fh.Size > h.maxBytes {
		return nil, errors.WithStack(domainerrors.Validation("file exceeds the upload limit of " + util.FormatBytes(h.maxBytes)))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	if int64(len(data)) > h.maxBytes {
		return nil, errors.WithStack(domainerrors.Validation("file exceeds the upload limit of " + util.FormatBytes(h.maxBytes)))
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || strings.HasPrefix(contentType, echo.MIMEOctetStream) {
		contentType = http.DetectContentType(data)
	}

	return &usecase.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
