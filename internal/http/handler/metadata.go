package handler

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ostafen/fileinfo/internal/format"
	"github.com/ostafen/fileinfo/internal/presenter"
)

var errOutsideRoot = errors.New("path is outside of the served root")

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MetadataResponse struct {
	*presenter.Description
	Summary string `json:"summary"`
}

type FormatResponse struct {
	Format      format.Format `json:"format"`
	Exts        []string      `json:"exts"`
	Description string        `json:"description"`
	Signatures  []string      `json:"signatures"`
}

type BatchRequest struct {
	Paths []string `json:"paths" binding:"required,min=1"`
}

type BatchItem struct {
	Path        string                 `json:"path"`
	Summary     string                 `json:"summary,omitempty"`
	Description *presenter.Description `json:"description,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

type MetadataHandler struct {
	root        string
	timeout     time.Duration
	parallelism int
	maxBatch    int
	logger      *slog.Logger
}

// NewMetadataHandler returns a handler describing files on the local file
// system. When root is not empty, only files below root are served.
func NewMetadataHandler(root string, timeout time.Duration, parallelism int, logger *slog.Logger) *MetadataHandler {
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
	}
	return &MetadataHandler{
		root:        root,
		timeout:     timeout,
		parallelism: parallelism,
		maxBatch:    1024,
		logger:      logger,
	}
}

func (h *MetadataHandler) resolve(path string) (string, error) {
	if h.root == "" {
		return filepath.Clean(path), nil
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(h.root, path)
	}
	path = filepath.Clean(path)
	if !within(h.root, path) {
		return "", errOutsideRoot
	}

	// Links are followed before the final check, so that a link below root
	// cannot point outside of it. Missing files keep their lexical path and
	// are reported as not found when described.
	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		path = resolved
	case !errors.Is(err, fs.ErrNotExist):
		return "", err
	}

	if !within(h.root, path) {
		return "", errOutsideRoot
	}
	return path, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (h *MetadataHandler) Get(c *gin.Context) {
	query := c.Query("path")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Query parameter 'path' is required",
		})
		return
	}

	path, err := h.resolve(query)
	if errors.Is(err, errOutsideRoot) {
		h.logger.Warn("Rejected path", "path", query, "error", err)
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "Access denied",
		})
		return
	}
	if err != nil {
		h.writeError(c, query, err)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	desc, err := presenter.DescribeContext(ctx, path)
	if err != nil {
		h.writeError(c, path, err)
		return
	}

	if !desc.Recognized() {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Unrecognized file format",
			Details: "Supported image formats: PNG, JPEG, BMP, GIF",
		})
		return
	}

	c.JSON(http.StatusOK, MetadataResponse{
		Description: desc,
		Summary:     desc.Summary(),
	})
}

// Batch describes several files at once. Failures are reported per item and
// never fail the whole request.
func (h *MetadataHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if len(req.Paths) > h.maxBatch {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Too many paths",
		})
		return
	}

	items := make([]BatchItem, len(req.Paths))

	var paths []string
	var index []int
	for i, p := range req.Paths {
		items[i].Path = p

		path, err := h.resolve(p)
		if errors.Is(err, errOutsideRoot) {
			items[i].Error = "Access denied"
			continue
		}
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		paths = append(paths, path)
		index = append(index, i)
	}

	results := presenter.DescribeAll(c.Request.Context(), paths, h.parallelism, h.timeout)
	for j, res := range results {
		item := &items[index[j]]
		if res.Err != nil {
			item.Error = res.Err.Error()
			continue
		}
		item.Description = res.Description
		item.Summary = res.Description.Summary()
	}
	c.JSON(http.StatusOK, items)
}

func (h *MetadataHandler) writeError(c *gin.Context, path string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
	case errors.Is(err, presenter.ErrNotRegular):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Not a regular file"})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Describe timed out", "path", path, "timeout", h.timeout)
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Timed out reading file"})
	default:
		h.logger.Error("Failed to describe file", "path", path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to read file",
			Details: err.Error(),
		})
	}
}

func (h *MetadataHandler) Formats(c *gin.Context) {
	hdrs := format.Headers()

	resp := make([]FormatResponse, 0, len(hdrs))
	for _, hdr := range hdrs {
		sigs := make([]string, len(hdr.Signatures))
		for i, sig := range hdr.Signatures {
			sigs[i] = hex.EncodeToString(sig)
		}
		resp = append(resp, FormatResponse{
			Format:      hdr.Format,
			Exts:        hdr.Exts,
			Description: hdr.Description,
			Signatures:  sigs,
		})
	}
	c.JSON(http.StatusOK, resp)
}
