package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	"github.com/matzehuels/levelgen/pkg/buildinfo"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/level"
	"github.com/matzehuels/levelgen/pkg/pipeline"
	"github.com/matzehuels/levelgen/pkg/render/treeviz"
)

// levelRequest is the body of POST /v1/levels. Exactly one of Blueprint
// and Source must be set.
type levelRequest struct {
	Blueprint string `json:"blueprint,omitempty"`
	Source    string `json:"source,omitempty"`
	// Format of Source; defaults to toml.
	Format string `json:"format,omitempty"`

	pipeline.Options
}

type levelResponse struct {
	RunID       string       `json:"run_id"`
	Blueprint   string       `json:"blueprint"`
	Seed        uint64       `json:"seed"`
	AttemptSeed uint64       `json:"attempt_seed"`
	Attempts    int          `json:"attempts"`
	CacheHit    bool         `json:"cache_hit"`
	DurationMS  float64      `json:"duration_ms"`
	Level       *level.Level `json:"level"`
	ASCII       string       `json:"ascii,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleListBlueprints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"blueprints": s.registry.Names()})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "*"), "/tree")
	if !ok {
		http.NotFound(w, r)
		return
	}
	bp, err := s.registry.Get(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	dot := treeviz.ToDOT(bp.Root, treeviz.Options{Detailed: r.URL.Query().Get("detailed") != "false"})
	switch format := r.URL.Query().Get("format"); format {
	case "", "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write([]byte(dot))
	case "svg":
		svg, err := treeviz.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render tree"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	default:
		s.writeError(w, apperrors.ValidateFormat(format, "dot", "svg"))
	}
}

func (s *Server) handleCreateLevel(w http.ResponseWriter, r *http.Request) {
	var req levelRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	bp, err := s.resolve(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := req.Options
	opts.Color = false
	opts.Logger = nil
	res, err := s.runner.Generate(r.Context(), bp, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, levelResponse{
		RunID:       res.RunID.String(),
		Blueprint:   res.Blueprint,
		Seed:        res.Seed,
		AttemptSeed: res.AttemptSeed,
		Attempts:    res.Attempts,
		CacheHit:    res.CacheHit,
		DurationMS:  float64(res.Duration.Microseconds()) / 1000,
		Level:       res.Level(),
		ASCII:       string(res.Artifacts[pipeline.FormatASCII]),
	})
}

func (s *Server) resolve(req levelRequest) (*blueprint.Blueprint, error) {
	switch {
	case req.Blueprint != "" && req.Source != "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "set either blueprint or source, not both")
	case req.Blueprint != "":
		return s.registry.Get(req.Blueprint)
	case req.Source != "":
		format := blueprint.FormatTOML
		if req.Format != "" {
			f, err := blueprint.ParseFormat(req.Format)
			if err != nil {
				return nil, err
			}
			format = f
		}
		return blueprint.Parse([]byte(req.Source), format)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "blueprint or source is required")
}

// status maps error codes to HTTP statuses.
func status(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidBlueprint,
		apperrors.ErrCodeInvalidGenerator,
		apperrors.ErrCodeInvalidPredicate,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeGenerationFailed:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := status(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	c := apperrors.GetCode(err)
	if c == "" {
		c = apperrors.ErrCodeInternal
	}
	writeJSON(w, code, errorBody{Error: errorDetail{Code: c, Message: apperrors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
