package http

import (
	"net/http"
)

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := s.svc.UpdateUserProfile(r.Context(), addr, req.Name, req.Email)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	profile, err := s.svc.GetUserProfile(r.Context(), addr)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

type addContactRequest struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func (s *Server) handleAddContact(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	var req addContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	contact, err := s.svc.AddContact(r.Context(), addr, req.Address, req.Name, req.Email)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContactResponse(*contact))
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	addr, ok := caller(w, r)
	if !ok {
		return
	}
	contacts, err := s.svc.ListContacts(r.Context(), addr)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		out[i] = toContactResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}
