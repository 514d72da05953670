package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/structsketch/structsketch/backend-go/internal/document"
	"github.com/structsketch/structsketch/backend-go/internal/engine"
	"github.com/structsketch/structsketch/backend-go/internal/geom"
	"github.com/structsketch/structsketch/backend-go/internal/shape"
)

const maxBodySize = 1 << 20

// Handler exposes the shape factories and geometry helpers over HTTP.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Register mounts the handler routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/shapes/{kind}", h.BuildShape).Methods("POST")
	api.HandleFunc("/sample", h.Sample).Methods("GET")
	api.HandleFunc("/geometry/intersect", h.Intersect).Methods("POST")
	api.HandleFunc("/geometry/inside-points", h.InsidePoints).Methods("POST")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type shapeResponse struct {
	Kind      document.GlyphKind   `json:"kind"`
	Primitive shape.Primitive      `json:"primitive"`
	Bounds    geom.Rect            `json:"bounds"`
	Commands  []engine.DrawCommand `json:"commands"`
}

// BuildShape handles POST /api/shapes/{kind}. The body holds the glyph
// parameters; the response carries the primitive tree and its draw commands.
func (h *Handler) BuildShape(w http.ResponseWriter, r *http.Request) {
	kind, err := document.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil || !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "kind": "bad_request"})
		return
	}

	g := document.Glyph{ID: string(kind), Kind: kind, Params: body}
	prim, err := engine.BuildGlyph(g)
	if err != nil {
		writeError(w, err)
		return
	}

	sketch := document.NewSketch("")
	sketch.Add(g)
	cmds := engine.CompileDrawCommands(engine.BuildSceneGraph(sketch), geom.Identity())
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}

	writeJSON(w, http.StatusOK, shapeResponse{
		Kind:      kind,
		Primitive: prim,
		Bounds:    prim.Bounds(),
		Commands:  cmds,
	})
}

// Sample handles GET /api/sample.
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, document.NewSampleSketch())
}

type intersectRequest struct {
	Target [2]geom.Vector `json:"target"`
	Start  geom.Vector    `json:"start"`
	Dir    geom.Vector    `json:"dir"`
}

type intersectResponse struct {
	Hit   bool         `json:"hit"`
	Point *geom.Vector `json:"point,omitempty"`
}

// Intersect handles POST /api/geometry/intersect.
func (h *Handler) Intersect(w http.ResponseWriter, r *http.Request) {
	var req intersectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, ok := geom.IntersectPoint(geom.NewLine(req.Target[0], req.Target[1]), req.Start, req.Dir)
	resp := intersectResponse{Hit: ok}
	if ok {
		resp.Point = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

type insidePointsRequest struct {
	Start geom.Vector `json:"start"`
	End   geom.Vector `json:"end"`
}

// InsidePoints handles POST /api/geometry/inside-points.
func (h *Handler) InsidePoints(w http.ResponseWriter, r *http.Request) {
	var req insidePointsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	dir, err := geom.Direction(req.Start, req.End)
	if err != nil {
		writeError(w, err)
		return
	}
	points := geom.InsidePoints(req.Start, req.End, dir)
	if points == nil {
		points = []geom.Vector{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "kind": "bad_request"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	if engine.IsClientError(err) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error(), "kind": engine.ErrorKind(err)})
		return
	}
	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error", "kind": "internal"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
