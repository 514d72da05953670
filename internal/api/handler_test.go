package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()
	NewHandler().Register(r)
	return r
}

func do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	rec, out := do(t, "GET", "/health", "")
	if rec.Code != http.StatusOK || out["status"] != "ok" {
		t.Errorf("health = %d %v", rec.Code, out)
	}
}

func TestBuildShape(t *testing.T) {
	tests := []struct {
		kind     string
		body     string
		primType string
		minCmds  int
	}{
		{"beam", `{"segment":{"form":"points","points":[0,0,100,0]}}`, "line", 1},
		{"node", `{"position":{"x":10,"y":10}}`, "circle", 1},
		{"arrow", `{"segment":{"form":"vectors","i":{"x":0,"y":0},"j":{"x":0,"y":50}},"options":{"arrowWidth":4}}`, "polygon", 1},
		{"guide", `{"segment":{"form":"points","points":[0,0,100,0]}}`, "group", 6},
		{"trapezoid", `{"beam":{"form":"points","points":[0,100,300,100]},"forceAverage":10,"forceI":10,"forceJ":10}`, "group", 15},
		{"freehand", `{"points":[{"x":0,"y":0},{"x":5,"y":5}],"brush":{"width":3,"color":"#000000"}}`, "polyline", 1},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rec, out := do(t, "POST", "/api/shapes/"+tt.kind, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %v", rec.Code, out)
			}
			prim, _ := out["primitive"].(map[string]any)
			if prim["type"] != tt.primType {
				t.Errorf("primitive type = %v, want %s", prim["type"], tt.primType)
			}
			cmds, _ := out["commands"].([]any)
			if len(cmds) < tt.minCmds {
				t.Errorf("commands = %d, want >= %d", len(cmds), tt.minCmds)
			}
			if _, ok := out["bounds"].(map[string]any); !ok {
				t.Error("missing bounds")
			}
		})
	}
}

func TestBuildShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		kind string
	}{
		{"unknown kind", "/api/shapes/column", `{}`, "unknown_kind"},
		{"invalid json", "/api/shapes/beam", `{"segment":`, "bad_request"},
		{"degenerate", "/api/shapes/beam", `{"segment":{"form":"points","points":[3,3,3,3]}}`, "degenerate_vector"},
		{"missing vector", "/api/shapes/arrow", `{"segment":{"form":"vectors","i":{"x":0,"y":0}}}`, "invalid_parameters"},
		{"bad option", "/api/shapes/beam", `{"segment":{"form":"points","points":[0,0,1,0]},"options":{"stroke":5}}`, "invalid_parameters"},
		{"bad load", "/api/shapes/trapezoid", `{"beam":{"form":"points","points":[0,0,1,0]},"distanceI":2}`, "configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, "POST", tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if out["kind"] != tt.kind {
				t.Errorf("kind = %v, want %s (error %v)", out["kind"], tt.kind, out["error"])
			}
		})
	}
}

func TestSample(t *testing.T) {
	rec, out := do(t, "GET", "/api/sample", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if order, _ := out["order"].([]any); len(order) == 0 {
		t.Error("sample sketch has no glyphs")
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		body string
		hit  bool
		x, y float64
	}{
		{"crossing", `{"target":[{"x":0,"y":0},{"x":10,"y":10}],"start":{"x":0,"y":10},"dir":{"x":1,"y":-1}}`, true, 5, 5},
		{"parallel", `{"target":[{"x":0,"y":0},{"x":10,"y":0}],"start":{"x":0,"y":5},"dir":{"x":1,"y":0}}`, false, 0, 0},
		{"outside box", `{"target":[{"x":0,"y":0},{"x":10,"y":0}],"start":{"x":20,"y":5},"dir":{"x":0,"y":1}}`, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, "POST", "/api/geometry/intersect", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if out["hit"] != tt.hit {
				t.Fatalf("hit = %v, want %v", out["hit"], tt.hit)
			}
			if !tt.hit {
				return
			}
			p := out["point"].(map[string]any)
			if p["x"] != tt.x || p["y"] != tt.y {
				t.Errorf("point = %v, want (%g,%g)", p, tt.x, tt.y)
			}
		})
	}
}

func TestInsidePoints(t *testing.T) {
	rec, out := do(t, "POST", "/api/geometry/inside-points", `{"start":{"x":0,"y":0},"end":{"x":100,"y":0}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if pts, _ := out["points"].([]any); len(pts) != 3 {
		t.Errorf("points = %v, want 3", out["points"])
	}

	rec, out = do(t, "POST", "/api/geometry/inside-points", `{"start":{"x":1,"y":1},"end":{"x":1,"y":1}}`)
	if rec.Code != http.StatusBadRequest || out["kind"] != "degenerate_vector" {
		t.Errorf("coincident = %d %v", rec.Code, out)
	}
}
