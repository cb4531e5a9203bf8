package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"deepspace-navigator/internal/export"
	"deepspace-navigator/internal/geometry"
	"deepspace-navigator/internal/hazard"
	"deepspace-navigator/internal/planner"
	"deepspace-navigator/internal/scenario"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// PlanRequest selects a stored scenario by group and number, or carries an
// inline scenario document
type PlanRequest struct {
	Group    string          `json:"group"`
	Number   int             `json:"number" binding:"gte=0"`
	Target   int             `json:"target" binding:"gte=0"`
	Scenario json.RawMessage `json:"scenario"`
}

// PlanResponse carries the route and the candidate edges for drawing
type PlanResponse struct {
	Path             [][2]float64    `json:"path"`
	Lines            [][2][2]float64 `json:"lines"`
	Found            bool            `json:"found"`
	Length           float64         `json:"length"`
	Nodes            int             `json:"nodes"`
	Edges            int             `json:"edges"`
	CalculationTime  float64         `json:"calculation_time"`
	AllowedDetection float64         `json:"allowed_detection"`
	Message          string          `json:"message"`
	RequestID        string          `json:"request_id"`
}

// ExportRequest is a previously planned route to seal
type ExportRequest struct {
	Path            [][2]float64 `json:"path" binding:"required"`
	CalculationTime float64      `json:"calculation_time" binding:"gte=0"`
	Number          int          `json:"number" binding:"gte=1"`
}

func (s *Server) fail(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: requestID(c),
	})
}

// failFor maps an error to its status code; every handler goes through here
func (s *Server) failFor(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		s.fail(c, http.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, scenario.ErrMalformed):
		s.fail(c, http.StatusBadRequest, "MALFORMED_SCENARIO", err)
	case errors.Is(err, hazard.ErrInvalidHazard),
		errors.Is(err, planner.ErrNoTargets),
		errors.Is(err, planner.ErrInvalidPoint),
		errors.Is(err, planner.ErrTargetOutOfRange):
		s.fail(c, http.StatusUnprocessableEntity, "INVALID_SCENARIO", err)
	case errors.Is(err, export.ErrInvalidArtifact), errors.Is(err, export.ErrDecryptionFailed):
		s.fail(c, http.StatusBadRequest, "INVALID_ARTIFACT", err)
	default:
		s.logger.Error("request failed", "request_id", requestID(c), "error", err)
		s.fail(c, http.StatusInternalServerError, "INTERNAL", errors.New("internal error"))
	}
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"scenarios": s.repo.Len(),
		"export":    s.exporter != nil,
	})
}

// handleListScenarios handles GET /scenarios
func (s *Server) handleListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": s.repo.Groups()})
}

// handleGetScenario handles GET /scenarios/:group/:number and returns the
// stored document as is
func (s *Server) handleGetScenario(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Errorf("scenario number %q is not a number", c.Param("number")))
		return
	}
	raw, err := s.repo.Raw(c.Param("group"), n)
	if err != nil {
		s.failFor(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// handlePlan handles POST /plan
func (s *Server) handlePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	var (
		sc  *scenario.Scenario
		err error
	)
	switch {
	case len(req.Scenario) > 0 && string(req.Scenario) != "null":
		// inline documents may not reference files on the server
		sc, err = scenario.Decode(req.Scenario, scenario.DecodeOptions{})
	case req.Group != "" && req.Number > 0:
		sc, err = s.repo.Load(req.Group, req.Number)
	default:
		s.fail(c, http.StatusBadRequest, "INVALID_REQUEST", errors.New("either scenario or group and number are required"))
		return
	}
	if err != nil {
		s.failFor(c, err)
		return
	}

	res, err := s.planner.PlanTo(sc, req.Target)
	observePlan(res, err)
	if err != nil {
		s.failFor(c, err)
		return
	}

	resp := PlanResponse{
		Path:             pointsToPairs(res.Path),
		Lines:            make([][2][2]float64, 0, res.Graph.EdgeCount()),
		Found:            res.Found,
		Length:           res.Length,
		Nodes:            res.Graph.NodeCount(),
		Edges:            res.Graph.EdgeCount(),
		CalculationTime:  res.Elapsed.Seconds(),
		AllowedDetection: sc.AllowedDetection,
		Message:          "Path found",
		RequestID:        requestID(c),
	}
	for _, l := range res.Graph.Lines() {
		resp.Lines = append(resp.Lines, [2][2]float64{{l[0].X, l[0].Y}, {l[1].X, l[1].Y}})
	}
	if !res.Found {
		resp.Message = "No path returned, target is unreachable"
	}
	c.JSON(http.StatusOK, resp)
}

// handleExport handles POST /export and answers with a text attachment
func (s *Server) handleExport(c *gin.Context) {
	if s.exporter == nil {
		s.fail(c, http.StatusServiceUnavailable, "EXPORT_DISABLED", errors.New("no export passphrase configured"))
		return
	}
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	path := make([]geometry.Point, len(req.Path))
	for i, p := range req.Path {
		path[i] = geometry.Pt(p[0], p[1])
	}
	elapsed := time.Duration(req.CalculationTime * float64(time.Second))
	artifact, err := s.exporter.Export(path, elapsed)
	if err != nil {
		s.failFor(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(req.Number)))
	c.String(http.StatusOK, artifact)
}

func pointsToPairs(points []geometry.Point) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
