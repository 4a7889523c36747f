package web

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/actual-tools/intesa2actual/internal/actual"
	"github.com/actual-tools/intesa2actual/internal/buildinfo"
	"github.com/actual-tools/intesa2actual/internal/converter"
	"github.com/actual-tools/intesa2actual/internal/statement"
	"github.com/actual-tools/intesa2actual/internal/transform"
)

// maxUploadBytes caps statement uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler serves the upload UI and the conversion endpoint.
type Handler struct {
	opts converter.Options
	log  zerolog.Logger
}

// NewHandler creates a Handler that converts uploads with the given options.
func NewHandler(opts converter.Options, log zerolog.Logger) *Handler {
	return &Handler{opts: opts, log: log}
}

// Routes returns the full HTTP handler with middleware applied.
func (h *Handler) Routes() http.Handler {
	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("static assets missing from binary: %v", err))
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/convert", h.handleConvert)
	mux.HandleFunc("/healthz", h.handleHealth)

	var handler http.Handler = mux
	handler = Logger(h.log)(handler)
	handler = Recovery(h.log)(handler)
	handler = RequestID(handler)
	return handler
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, http.StatusMethodNotAllowed, "Use POST to upload a statement")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, "Upload exceeds the 10 MiB limit")
			return
		}
		WriteError(w, http.StatusBadRequest, "Malformed multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, `Missing "file" form field`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Reading upload failed")
		return
	}

	result, err := converter.Convert(data, header.Filename, h.opts)
	if err != nil {
		h.log.Warn().
			Str("request_id", RequestIDFrom(r.Context())).
			Str("file", header.Filename).
			Err(err).
			Msg("Conversion failed")

		WriteError(w, statusForError(err), err.Error())
		return
	}

	h.log.Info().
		Str("request_id", RequestIDFrom(r.Context())).
		Str("file", header.Filename).
		Int("records", len(result.Records)).
		Int("skipped", len(result.Skipped)).
		Msg("Statement converted")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", actual.ConvertedName(header.Filename)))
	if len(result.Skipped) > 0 {
		w.Header().Set("X-Skipped-Rows", joinRows(result.Skipped))
	}

	if err := result.WriteCSV(w); err != nil {
		h.log.Error().Err(err).Msg("Writing response failed")
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// statusForError maps conversion failures onto HTTP status codes. Bad
// input from the client is a 4xx, everything else a 500.
func statusForError(err error) int {
	var formatErr statement.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return http.StatusUnsupportedMediaType
	}

	var columnErr transform.MissingColumnError
	var rowErr transform.MalformedRowError
	switch {
	case errors.Is(err, transform.ErrHeaderNotFound),
		errors.As(err, &columnErr),
		errors.As(err, &rowErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func joinRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = strconv.Itoa(row)
	}
	return strings.Join(parts, ",")
}
