package http

import (
	"net/http"
)

type createExpenseRequest struct {
	Amount      string   `json:"amount"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}

	expense, err := s.svc.CreateExpense(r.Context(), addr, r.PathValue("id"), amount, req.Description, 0, req.Members)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	expense, err := s.svc.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleListExpenseMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	members, err := s.svc.ListExpenseMembers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]expenseMemberResponse, len(members))
	for i, m := range members {
		out[i] = toExpenseMemberResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}
