package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"paperbill/adapters/storage"
	"paperbill/core/schedule"
	"paperbill/internal/errors"
)

// handleCalculate handles POST /calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !s.decode(w, r, &req) {
		return
	}

	bill, err := s.engine.CalculateMonth(r.Context(), monthSpec(req.Month, req.Year), req.Log)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, bill, http.StatusOK)
}

// handleGetPapers handles GET /papers
func (s *Server) handleGetPapers(w http.ResponseWriter, r *http.Request) {
	papers, err := s.store.GetPapers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"papers": papers}, http.StatusOK)
}

// handleAddPaper handles POST /papers
func (s *Server) handleAddPaper(w http.ResponseWriter, r *http.Request) {
	var req PaperRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		s.writeError(w, errors.New(errors.TypeInput, "name is required"))
		return
	}

	sched, err := buildSchedule(req.DeliveryDays, req.Prices)
	if err != nil {
		s.writeError(w, err)
		return
	}

	record, err := s.store.AddPaper(r.Context(), req.Name, sched)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, record, http.StatusCreated)
}

// handleEditPaper handles PATCH /papers/{id}
func (s *Server) handleEditPaper(w http.ResponseWriter, r *http.Request) {
	var req PaperRequest
	if !s.decode(w, r, &req) {
		return
	}

	var name *string
	if req.Name != "" {
		name = &req.Name
	}

	var sched *schedule.Schedule
	if req.DeliveryDays != "" {
		built, err := buildSchedule(req.DeliveryDays, req.Prices)
		if err != nil {
			s.writeError(w, err)
			return
		}
		sched = &built
	}

	if err := s.store.EditPaper(r.Context(), r.PathValue("id"), name, sched); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// handleDeletePaper handles DELETE /papers/{id}
func (s *Server) handleDeletePaper(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePaper(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// handleAddUndelivered handles POST /undelivered
func (s *Server) handleAddUndelivered(w http.ResponseWriter, r *http.Request) {
	var req UndeliveredRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Strings) == 0 {
		s.writeError(w, errors.New(errors.TypeInput, "strings are required"))
		return
	}

	spec := monthSpec(req.Month, req.Year)
	if err := s.store.AddUndeliveredStrings(r.Context(), spec, req.PaperID, req.Strings...); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]bool{"ok": true}, http.StatusCreated)
}

// handleGetUndelivered handles GET /undelivered
func (s *Server) handleGetUndelivered(w http.ResponseWriter, r *http.Request) {
	filter := &storage.StringFilter{
		ID:      r.URL.Query().Get("id"),
		PaperID: r.URL.Query().Get("paper_id"),
		Month:   queryInt(r, "month"),
		Year:    queryInt(r, "year"),
		Value:   r.URL.Query().Get("value"),
	}

	records, err := s.store.GetUndeliveredStrings(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"strings": records}, http.StatusOK)
}

// handleDeleteUndelivered handles DELETE /undelivered
func (s *Server) handleDeleteUndelivered(w http.ResponseWriter, r *http.Request) {
	var req DeleteUndeliveredRequest
	if !s.decode(w, r, &req) {
		return
	}

	filter := &storage.StringFilter{
		ID:      req.ID,
		PaperID: req.PaperID,
		Month:   req.Month,
		Year:    req.Year,
		Value:   req.Value,
	}
	if err := s.store.DeleteUndeliveredStrings(r.Context(), filter); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// handleGetLogs handles GET /logs
func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	filter := &storage.LogFilter{
		PaperID: r.URL.Query().Get("paper_id"),
		Month:   queryInt(r, "month"),
		Year:    queryInt(r, "year"),
	}

	logs, err := s.store.ListBillLogs(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"logs": logs}, http.StatusOK)
}

func buildSchedule(deliveryDays string, prices []string) (schedule.Schedule, error) {
	delivered, err := schedule.ParseDeliveryDays(deliveryDays)
	if err != nil {
		return schedule.Schedule{}, err
	}

	decimals := make([]decimal.Decimal, 0, len(prices))
	for _, p := range prices {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return schedule.Schedule{}, errors.Newf(errors.TypeInput, "invalid price %q", p)
		}
		decimals = append(decimals, d)
	}

	return schedule.Build(delivered, decimals)
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
