package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/domain/model"
	"github.com/m-mizutani/herbal/pkg/usecase"
	"github.com/m-mizutani/herbal/pkg/utils/async"
)

// ActionHandler turns page events into presenter calls
type ActionHandler struct {
	sessions      *sessionStore
	metrics       *Metrics
	maxUploadSize int64
}

func (h *ActionHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.sessions.get(w, r))
}

// handleSelect reads the multipart field "file" and selects it
func (h *ActionHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := h.sessions.get(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	file, err := readUpload(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, goerr.Wrap(err, "uploaded file too large", goerr.V("limit", h.maxUploadSize)), http.StatusRequestEntityTooLarge)
			return
		}
		ctxlog.From(ctx).Warn("No usable file in upload", "error", err)
	}

	if err := sess.presenter.SelectFile(ctx, file); err != nil && !errors.Is(err, usecase.ErrInvalidFileType) {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	h.respond(w, r, sess)
}

// handleDetect starts the detect without waiting for the backend, so the
// session keeps accepting reset and select while the request is in flight
func (h *ActionHandler) handleDetect(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.get(w, r)

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		outcome := sess.presenter.Detect(ctx)
		h.metrics.observeOutcome(outcome)
		ctxlog.From(ctx).Debug("Detect finished", "session", sess.id, "outcome", outcome)
		return nil
	})

	if wantsJSON(r) {
		writeScreen(w, r, sess, http.StatusAccepted)
		return
	}
	http.Redirect(w, r, "/?pending=1", http.StatusSeeOther)
}

func (h *ActionHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.get(w, r)
	sess.presenter.Reset(r.Context())
	h.respond(w, r, sess)
}

func (h *ActionHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeScreen(w, r, h.sessions.get(w, r), http.StatusOK)
}

func (h *ActionHandler) respond(w http.ResponseWriter, r *http.Request, sess *session) {
	if wantsJSON(r) {
		writeScreen(w, r, sess, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeScreen(w http.ResponseWriter, r *http.Request, sess *session, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(sess.view.Snapshot()); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode screen", "error", err)
	}
}

// readUpload returns the uploaded file. The media type is the one the
// browser declared, else guessed from the extension, else sniffed.
func readUpload(r *http.Request) (*model.SelectedFile, error) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read uploaded file", goerr.V("name", hdr.Filename))
	}

	return model.NewSelectedFile(hdr.Filename, hdr.Header.Get("Content-Type"), data), nil
}
