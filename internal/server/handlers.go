package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/pglens/internal/query"
)

type connectRequest struct {
	ConnectionString string `json:"connection_string"`
}

type connectResponse struct {
	ConnID string `json:"conn_id"`
}

type disconnectRequest struct {
	ConnID string `json:"conn_id"`
}

type disconnectResponse struct {
	Success bool `json:"success"`
}

type queryRequest struct {
	ConnID string `json:"conn_id"`
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

type queryResponse struct {
	Rows []query.Row `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Capabilities())
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ConnectionString == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("connection_string is required"))
		return
	}

	id, err := s.svc.Registrar.Register(r.Context(), req.ConnectionString)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, connectResponse{ConnID: id})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	var req disconnectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ConnID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("conn_id is required"))
		return
	}

	if err := s.svc.Registrar.Disconnect(req.ConnID); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, disconnectResponse{Success: true})
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Registrar.Status())
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ConnID == "" || req.SQL == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("conn_id and sql are required"))
		return
	}

	rows, err := s.svc.Executor.Execute(r.Context(), req.ConnID, req.SQL, req.Params)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	if rows == nil {
		rows = []query.Row{}
	}
	s.writeJSON(w, http.StatusOK, queryResponse{Rows: rows})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ConnID == "" || req.SQL == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("conn_id and sql are required"))
		return
	}

	meta, err := s.svc.Analyzer.Analyze(r.Context(), req.ConnID, req.SQL)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Introspector.Database(r.Context(), chi.URLParam(r, "connID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Introspector.Schema(r.Context(),
		chi.URLParam(r, "connID"), chi.URLParam(r, "schema"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Introspector.Table(r.Context(),
		chi.URLParam(r, "connID"), chi.URLParam(r, "schema"), chi.URLParam(r, "table"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Introspector.View(r.Context(),
		chi.URLParam(r, "connID"), chi.URLParam(r, "schema"), chi.URLParam(r, "view"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var queryErr *query.QueryError
	if errors.As(err, &queryErr) {
		resp.Code = queryErr.Code
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.writeJSON(w, status, resp)
}
