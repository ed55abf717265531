package http

import (
	"net/http"
)

type settleUpRequest struct {
	Amount string `json:"amount"`
}

type settleUpResponse struct {
	Settlement settlementResponse   `json:"settlement"`
	Allocated  []allocationResponse `json:"allocated"`
}

func (s *Server) handleSettleUp(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	var req settleUpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}

	settlement, allocs, err := s.svc.SettleUp(r.Context(), addr, r.PathValue("id"), amount, 0)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, settleUpResponse{
		Settlement: toSettlementResponse(settlement),
		Allocated:  toAllocationResponses(allocs),
	})
}

func (s *Server) handleGetSettlement(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	settlement, err := s.svc.GetSettlement(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlementResponse(settlement))
}

func (s *Server) handleListSettlementMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	members, err := s.svc.ListSettlementMembers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]settlementMemberResponse, len(members))
	for i, m := range members {
		out[i] = toSettlementMemberResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}
