package http

import (
	"net/http"

	"splitsum/internal/core"
)

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := s.svc.CreateGroup(r.Context(), addr, req.Name, req.Description, 0, req.Members)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	group, err := s.svc.GetGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	groups, err := s.svc.ListMembershipGroups(r.Context(), addr)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]groupResponse, len(groups))
	for i := range groups {
		out[i] = toGroupResponse(&groups[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	memberships, err := s.svc.ListGroupMemberships(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]membershipResponse, len(memberships))
	for i, m := range memberships {
		out[i] = toMembershipResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

type addMemberRequest struct {
	Member string `json:"member"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	var req addMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.svc.AddMembership(r.Context(), addr, r.PathValue("id"), req.Member); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	member := core.NormalizeAddress(r.PathValue("address"))
	if err := s.svc.RemoveMembership(r.Context(), addr, r.PathValue("id"), member); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
