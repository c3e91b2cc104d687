package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/orderdesk/internal/core"
	"github.com/JonMunkholm/orderdesk/internal/logging"
	"github.com/JonMunkholm/orderdesk/internal/metrics"
	"github.com/JonMunkholm/orderdesk/internal/tabular"
)

// productRequest is the body of POST /api/products. Blank fields are
// rejected by the catalog so they map to the field-specific message.
type productRequest struct {
	Name string `json:"name" validate:"max=200"`
	Code string `json:"code" validate:"max=64"`
	Unit string `json:"unit" validate:"max=32"`
}

type removeResponse struct {
	ID            string `json:"id"`
	RemovedOrders int    `json:"removed_orders"`
}

type importResponse struct {
	Added      int      `json:"added"`
	Skipped    int      `json:"skipped"`
	Ignored    int      `json:"ignored"`
	Total      int      `json:"total"`
	Duplicates []string `json:"duplicates"`
}

// handleListProducts returns the catalog, filtered by ?q= when present.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.session.SearchProducts(r.URL.Query().Get("q"))
	if products == nil {
		products = []core.Product{}
	}
	writeJSON(w, r, http.StatusOK, products)
}

// handleGetProduct returns one product by ID.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.session.FindProduct(id)
	if !ok {
		err := &core.UnknownProductError{ID: id}
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	p, err := s.session.AddProduct(req.Name, req.Code, req.Unit)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.metrics.ProductAdded(metrics.SourceManual)
	writeJSON(w, r, http.StatusCreated, p)
}

// handleRemoveProduct deletes a product and its orders.
func (s *Server) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, ok := s.session.RemoveProduct(id)
	if !ok {
		err := &core.UnknownProductError{ID: id}
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.metrics.ProductRemoved()
	writeJSON(w, r, http.StatusOK, removeResponse{ID: id, RemovedOrders: removed})
}

// handleImport decodes the uploaded spreadsheet in the "file" form field and
// merges it into the catalog. A file that cannot be decoded imports nothing.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var res core.ImportResult
	ok := s.withUpload(w, r, func(rows []core.Row, logger *slog.Logger) {
		res = s.session.ImportRows(rows)
		logger.Info("import completed", "added", res.Added, "skipped", res.Skipped, "ignored", res.Ignored)
	})
	if !ok {
		return
	}

	s.metrics.ImportMerged(res)

	dups := res.Duplicates
	if dups == nil {
		dups = []string{}
	}
	writeJSON(w, r, http.StatusOK, importResponse{
		Added:      res.Added,
		Skipped:    res.Skipped,
		Ignored:    res.Ignored,
		Total:      res.Total(),
		Duplicates: dups,
	})
}

// handleImportPreview decodes the upload like handleImport and reports what
// the merge would do, leaving the catalog unchanged.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	var preview core.ImportPreview
	ok := s.withUpload(w, r, func(rows []core.Row, logger *slog.Logger) {
		preview = s.session.PreviewImport(rows)
		res := preview.Result()
		logger.Info("import previewed", "added", res.Added, "skipped", res.Skipped, "ignored", res.Ignored)
	})
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}

// withUpload reads the "file" form field, decodes it while holding an import
// slot and passes the rows to apply. It responds with the error and returns
// false when any step fails.
func (s *Server) withUpload(w http.ResponseWriter, r *http.Request, apply func(rows []core.Row, logger *slog.Logger)) bool {
	maxSize := s.cfg.Import.MaxFileSize

	// leave room for multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+64<<10)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			err = fmt.Errorf("file too large: %w", err)
		} else {
			err = &requestError{reason: fmt.Sprintf("multipart form: %v", err)}
		}
		s.respondError(w, r, err, statusFor(err))
		return false
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = errNoFile
		}
		s.respondError(w, r, err, statusFor(err))
		return false
	}
	defer file.Close()

	if header.Size > maxSize {
		err := fmt.Errorf("file too large: %d bytes exceeds %d", header.Size, maxSize)
		s.respondError(w, r, err, http.StatusRequestEntityTooLarge)
		return false
	}

	logger := logging.WithFields(r.Context(), "filename", header.Filename, "size", header.Size)

	err = s.imports.Do(r.Context(), func() error {
		rows, err := tabular.Decode(file, header.Filename)
		if err != nil {
			return err
		}
		logger.Debug("import decoded", "rows", len(rows))
		apply(rows, logger)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return false
	}
	return true
}

// handleImportTemplate serves a blank import file. ?format= is csv (default) or xlsx.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = tabular.FormatCSV
	}
	contentType, ok := tabular.TemplateContentType(format)
	if !ok {
		err := &requestError{reason: fmt.Sprintf("unsupported template format %q", format)}
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := tabular.WriteTemplate(&buf, format); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition("шаблон_импорта."+format, "import_template."+format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.FromContext(r.Context()).Warn("template write", "error", err)
	}
}
