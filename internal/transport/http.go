package transport

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"line-edit-server/internal/errors"
	"line-edit-server/internal/logging"
	"line-edit-server/internal/models"
	"line-edit-server/internal/service"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 60 * time.Second
	maxRequestSizeMB    = 50
)

// HTTPHandler exposes the file service over plain HTTP POST endpoints.
type HTTPHandler struct {
	service service.FileService
	logger  *log.Logger
	// Server is the underlying http.Server, exposed so the entry point
	// can drive graceful shutdown.
	Server *http.Server
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(svc service.FileService, logger *log.Logger) *HTTPHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPHandler{
		service: svc,
		logger:  logger,
		Server:  &http.Server{},
	}
}

// RegisterRoutes sets up the HTTP routes.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/edit_file", handleJSON(h, h.service.EditFile))
	mux.HandleFunc("/read_file", handleJSON(h, h.service.ReadFile))
	mux.HandleFunc("/write_file", handleJSON(h, h.service.WriteFile))
	mux.HandleFunc("/list_files", handleJSON(h, h.service.ListFiles))
	mux.HandleFunc("/health", h.handleHealth)
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleJSON adapts a typed service method to an HTTP POST endpoint:
// strict JSON decode in, structured result or mapped error out.
func handleJSON[Req any, Resp any](h *HTTPHandler, call func(Req) (*Resp, *models.ErrorDetail)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(h.logger, w, http.StatusMethodNotAllowed,
				errors.NewInvalidRequestError(fmt.Sprintf("method %s not allowed, use POST", r.Method)))
			return
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			writeError(h.logger, w, http.StatusUnsupportedMediaType,
				errors.NewInvalidRequestError("Content-Type must be application/json"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, int64(maxRequestSizeMB)*1024*1024)
		defer r.Body.Close()

		var req Req
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			detail := decodeError(err)
			writeError(h.logger, w, errors.MapErrorToHTTPStatus(detail.Code), detail)
			return
		}

		resp, errDetail := call(req)
		if errDetail != nil {
			writeError(h.logger, w, errors.MapErrorToHTTPStatus(errDetail.Code), errDetail)
			return
		}
		writeJSON(h.logger, w, http.StatusOK, resp)
	}
}

func decodeError(err error) *models.ErrorDetail {
	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stdErrors.As(err, &maxBytesErr):
		return errors.NewInvalidRequestError(
			fmt.Sprintf("request body exceeds maximum size of %d MB", maxRequestSizeMB))
	case stdErrors.As(err, &syntaxErr):
		return errors.NewParseError(fmt.Sprintf("invalid JSON syntax at offset %d", syntaxErr.Offset))
	case stdErrors.As(err, &typeErr):
		return errors.NewParseError(
			fmt.Sprintf("invalid JSON type for field %q at offset %d", typeErr.Field, typeErr.Offset))
	default:
		return errors.NewParseError(err.Error())
	}
}

func writeJSON(logger *log.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encoding response", logging.FieldError, err)
	}
}

func writeError(logger *log.Logger, w http.ResponseWriter, status int, detail *models.ErrorDetail) {
	if detail == nil {
		detail = errors.NewInternalError("error details were lost")
		status = http.StatusInternalServerError
	}
	writeJSON(logger, w, status, errors.ToErrorResponse(detail))
}

// StartServer configures and runs the HTTP server. It blocks until the
// server stops; http.ErrServerClosed (graceful shutdown) is not an error.
func (h *HTTPHandler) StartServer(port int) error {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	h.Server.Addr = fmt.Sprintf(":%d", port)
	h.Server.Handler = mux
	h.Server.ReadTimeout = defaultReadTimeout
	h.Server.WriteTimeout = defaultWriteTimeout

	h.logger.Info("http transport started", logging.FieldPort, port)
	err := h.Server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	h.logger.Info("http transport stopped", logging.FieldPort, port)
	return nil
}
