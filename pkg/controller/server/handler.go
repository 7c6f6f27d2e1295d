package server

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/interfaces"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/errutil"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// maxBodySize caps an ingest request body
const maxBodySize = 1 << 20

type handler struct {
	uc interfaces.UseCase
}

type errorBody struct {
	Error string `json:"error"`
}

// handleError maps err to a response. Only bad requests carry a specific
// status; everything else is a generic 500 with details kept in logs.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, types.ErrBadRequest) {
		logging.From(r.Context()).Info("bad request", slog.Any("error", err))
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Bad Request"})
		return
	}

	errutil.HandleError(r.Context(), "request failed", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
}

func decodeTrackInput(r *http.Request) (*model.TrackInput, error) {
	if r.Body == nil {
		return nil, goerr.Wrap(types.ErrBadRequest, "no body")
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, goerr.Wrap(types.ErrBadRequest, "failed to read body", goerr.V("error", err.Error()))
	}
	if len(raw) > maxBodySize {
		return nil, goerr.Wrap(types.ErrBadRequest, "body too large")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, goerr.Wrap(types.ErrBadRequest, "empty form")
		}
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, goerr.Wrap(types.ErrBadRequest, "malformed form body", goerr.V("error", err.Error()))
		}
		return model.TrackInputFromForm(form)
	}

	return model.DecodeTrackInput(raw)
}

func (x *handler) track(w http.ResponseWriter, r *http.Request) {
	input, err := decodeTrackInput(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := x.uc.Track(DetachContext(r.Context()), input); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func (x *handler) overview(w http.ResponseWriter, r *http.Request) {
	summaries, err := x.uc.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (x *handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := x.uc.ExportCSV(r.Context(), &buf); err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	safeWrite(w, http.StatusOK, buf.Bytes())
}

func (x *handler) listRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := x.uc.ListRepos(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (x *handler) repoDetail(w http.ResponseWriter, r *http.Request) {
	hash := types.URLHash(chi.URLParam(r, "hash"))
	protocolAndHost := requestScheme(r) + "://" + r.Host

	summaries, err := x.uc.RepoDetail(r.Context(), hash, protocolAndHost)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (x *handler) repoCount(w http.ResponseWriter, r *http.Request) {
	hash := types.URLHash(chi.URLParam(r, "hash"))

	count, err := x.uc.RepoCount(r.Context(), hash)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		URLHash types.URLHash `json:"url_hash"`
		Count   int64         `json:"count"`
	}{URLHash: hash, Count: count})
}

func (x *handler) badge(w http.ResponseWriter, r *http.Request) {
	x.renderBadge(w, r, model.BadgeVariantBadge)
}

func (x *handler) button(w http.ResponseWriter, r *http.Request) {
	x.renderBadge(w, r, model.BadgeVariantButton)
}

func (x *handler) renderBadge(w http.ResponseWriter, r *http.Request, variant model.BadgeVariant) {
	hash := types.URLHash(chi.URLParam(r, "hash"))

	badge, err := x.uc.Badge(r.Context(), hash, variant)
	if err != nil {
		handleError(w, r, err)
		return
	}

	svg, err := renderSVG(variant, badge)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	safeWrite(w, http.StatusOK, svg)
}

func (x *handler) reputation(w http.ResponseWriter, r *http.Request) {
	repo := r.URL.Query().Get("repo")

	data, err := x.uc.Reputation(r.Context(), repo)
	if err != nil {
		if errors.Is(err, types.ErrUnconfigured) {
			writeJSON(w, http.StatusOK, errorBody{Error: "GITHUB_STATS_API_KEY is not set on the server"})
			return
		}
		handleError(w, r, err)
		return
	}

	if data == nil {
		data = []byte("null")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	safeWrite(w, http.StatusOK, data)
}

func (x *handler) whoami(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	if identity == nil {
		identity = &model.Identity{Emails: []string{}}
	}
	writeJSON(w, http.StatusOK, identity)
}
