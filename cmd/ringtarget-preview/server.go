package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/satindergrewal/ringtarget"
)

// ---------- JSON response types ----------

type pointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type arcJSON struct {
	Segment    int       `json:"segment"`
	StartAngle float64   `json:"startAngle"`
	EndAngle   float64   `json:"endAngle"`
	Start      pointJSON `json:"start"`
	End        pointJSON `json:"end"`
}

type targetJSON struct {
	Code   uint32    `json:"code"`
	Binary string    `json:"binary"`
	PNG    string    `json:"png"`
	SVG    string    `json:"svg"`
	Arcs   []arcJSON `json:"arcs"`
}

type configJSON struct {
	Bits             int `json:"bits"`
	RadiusInnerDot   int `json:"radiusInnerDot"`
	RadiusInnerBlack int `json:"radiusInnerBlack"`
	RadiusOuterWhite int `json:"radiusOuterWhite"`
	RadiusOuterBlack int `json:"radiusOuterBlack"`
	Width            int `json:"width"`
	Height           int `json:"height"`
}

type codesResponse struct {
	Config  configJSON   `json:"config"`
	Targets []targetJSON `json:"targets"`
}

type lookupResponse struct {
	Observed uint32 `json:"observed"`
	Code     uint32 `json:"code"`
	Shift    int    `json:"shift"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---------- server ----------

type server struct {
	config  ringtarget.Config
	book    *ringtarget.Codebook
	logger  *slog.Logger
	payload []byte // /api/codes body, built once
}

func newServer(config ringtarget.Config, book *ringtarget.Codebook, logger *slog.Logger) (http.Handler, error) {
	payload, err := json.Marshal(buildCodesResponse(config, book))
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	s := &server{config: config, book: book, logger: logger, payload: payload}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/codes", s.handleCodes)
	mux.HandleFunc("GET /api/lookup", s.handleLookup)
	mux.HandleFunc("GET /targets/{file}", s.handleTarget)
	return mux, nil
}

func buildCodesResponse(cfg ringtarget.Config, book *ringtarget.Codebook) codesResponse {
	codes := book.Codes()
	targets := make([]targetJSON, len(codes))
	for i, code := range codes {
		t := ringtarget.NewTarget(code, cfg)
		arcs := make([]arcJSON, len(t.Arcs))
		for j, a := range t.Arcs {
			arcs[j] = arcJSON{
				Segment:    a.Segment,
				StartAngle: a.StartAngle,
				EndAngle:   a.EndAngle,
				Start:      pointJSON{X: a.Start.X, Y: a.Start.Y},
				End:        pointJSON{X: a.End.X, Y: a.End.Y},
			}
		}
		name := strconv.FormatUint(uint64(code), 10)
		targets[i] = targetJSON{
			Code:   uint32(code),
			Binary: formatBinary(code, cfg.Bits),
			PNG:    "/targets/" + name + ".png",
			SVG:    "/targets/" + name + ".svg",
			Arcs:   arcs,
		}
	}

	return codesResponse{
		Config: configJSON{
			Bits:             cfg.Bits,
			RadiusInnerDot:   cfg.RadiusInnerDot,
			RadiusInnerBlack: cfg.RadiusInnerBlack,
			RadiusOuterWhite: cfg.RadiusOuterWhite,
			RadiusOuterBlack: cfg.RadiusOuterBlack,
			Width:            cfg.Width,
			Height:           cfg.Height,
		},
		Targets: targets,
	}
}

func (s *server) handleCodes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(s.payload)
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	// Base 0 accepts 0b/0x prefixes as well as decimal.
	observed, err := strconv.ParseUint(r.URL.Query().Get("observed"), 0, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "observed must be an unsigned 32-bit integer"})
		return
	}
	code, shift, err := s.book.Lookup(ringtarget.Code(observed))
	if errors.Is(err, ringtarget.ErrUnknownCode) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{Observed: uint32(observed), Code: uint32(code), Shift: shift})
}

func (s *server) handleTarget(w http.ResponseWriter, r *http.Request) {
	name, ext, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok || (ext != "png" && ext != "svg") {
		http.NotFound(w, r)
		return
	}
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil || !s.book.Contains(ringtarget.Code(n)) {
		http.NotFound(w, r)
		return
	}
	t := ringtarget.NewTarget(ringtarget.Code(n), s.config)

	var buf bytes.Buffer
	contentType := "image/png"
	if ext == "svg" {
		contentType = "image/svg+xml"
		err = ringtarget.WriteSVG(&buf, t, s.config)
	} else {
		err = ringtarget.RenderPNG(&buf, t, s.config)
	}
	if err != nil {
		s.logger.Error("render failed", "code", n, "format", ext, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// formatBinary renders code MSB first, zero-padded to bits digits, which is
// the clockwise segment order starting at north.
func formatBinary(code ringtarget.Code, bits int) string {
	s := strconv.FormatUint(uint64(code), 2)
	if len(s) < bits {
		s = strings.Repeat("0", bits-len(s)) + s
	}
	return s
}
