package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"splitsum/internal/core"
	"splitsum/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps ledger errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateGroup):
		status = http.StatusConflict
	case errors.Is(err, core.ErrNotGroupOwner), errors.Is(err, core.ErrNotGroupMember):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrTransferFailed):
		status = http.StatusBadGateway
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyAddress),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrNoSplitMembers),
		errors.Is(err, core.ErrDescriptionSize):
		status = http.StatusUnprocessableEntity
	default:
		slog.ErrorContext(r.Context(), "Unhandled ledger error",
			"error", err, "method", r.Method, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// caller extracts and normalizes the caller address. A missing header
// is reported as 401; everything past this point trusts the value.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	addr := core.NormalizeAddress(r.Header.Get("X-Caller-Address"))
	if addr == "" {
		writeError(w, http.StatusUnauthorized, "missing X-Caller-Address header")
		return "", false
	}
	return addr, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// parseAmount parses a decimal amount string from a request body.
func parseAmount(w http.ResponseWriter, s string) (core.Amount, bool) {
	amount, err := core.ParseAmount(strings.TrimSpace(s))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return 0, false
	}
	return amount, true
}

// Wire representations. Amounts travel as fixed 6-decimal strings.

type groupResponse struct {
	ID           string `json:"id"`
	OwnerAddress string `json:"owner_address"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

func toGroupResponse(g *core.Group) groupResponse {
	return groupResponse{
		ID:           g.ID,
		OwnerAddress: g.OwnerAddress,
		Name:         g.Name,
		Description:  g.Description,
		CreatedAt:    g.CreatedAt,
	}
}

type membershipResponse struct {
	GroupID       string `json:"group_id"`
	MemberAddress string `json:"member_address"`
	Balance       string `json:"balance"`
}

func toMembershipResponse(m core.Membership) membershipResponse {
	return membershipResponse{
		GroupID:       m.GroupID,
		MemberAddress: m.MemberAddress,
		Balance:       m.Balance.String(),
	}
}

type expenseResponse struct {
	ID              string   `json:"id"`
	GroupID         string   `json:"group_id"`
	PaidByAddress   string   `json:"paid_by_address"`
	Amount          string   `json:"amount"`
	Description     string   `json:"description,omitempty"`
	CreatedAt       int64    `json:"created_at"`
	MemberAddresses []string `json:"member_addresses"`
}

func toExpenseResponse(e *core.Expense) expenseResponse {
	return expenseResponse{
		ID:              e.ID,
		GroupID:         e.GroupID,
		PaidByAddress:   e.PaidByAddress,
		Amount:          e.Amount.String(),
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		MemberAddresses: e.MemberAddresses,
	}
}

type expenseMemberResponse struct {
	ExpenseID     string `json:"expense_id"`
	MemberAddress string `json:"member_address"`
	ShareAmount   string `json:"share_amount"`
}

func toExpenseMemberResponse(m core.ExpenseMember) expenseMemberResponse {
	return expenseMemberResponse{
		ExpenseID:     m.ExpenseID,
		MemberAddress: m.MemberAddress,
		ShareAmount:   m.ShareAmount.String(),
	}
}

type settlementResponse struct {
	ID           string `json:"id"`
	GroupID      string `json:"group_id"`
	PayerAddress string `json:"payer_address"`
	Amount       string `json:"amount"`
	CreatedAt    int64  `json:"created_at"`
}

func toSettlementResponse(s *core.Settlement) settlementResponse {
	return settlementResponse{
		ID:           s.ID,
		GroupID:      s.GroupID,
		PayerAddress: s.PayerAddress,
		Amount:       s.Amount.String(),
		CreatedAt:    s.CreatedAt,
	}
}

type allocationResponse struct {
	MemberAddress string `json:"member_address"`
	Amount        string `json:"amount"`
}

func toAllocationResponses(allocs []ledger.Allocation) []allocationResponse {
	out := make([]allocationResponse, len(allocs))
	for i, a := range allocs {
		out[i] = allocationResponse{MemberAddress: a.MemberAddress, Amount: a.Amount.String()}
	}
	return out
}

type settlementMemberResponse struct {
	SettlementID  string `json:"settlement_id"`
	MemberAddress string `json:"member_address"`
	Amount        string `json:"amount"`
}

func toSettlementMemberResponse(m core.SettlementMember) settlementMemberResponse {
	return settlementMemberResponse{
		SettlementID:  m.SettlementID,
		MemberAddress: m.MemberAddress,
		Amount:        m.Amount.String(),
	}
}

type profileResponse struct {
	UserAddress string `json:"user_address"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	UpdatedAt   int64  `json:"updated_at"`
}

func toProfileResponse(p *core.UserProfile) profileResponse {
	return profileResponse{
		UserAddress: p.UserAddress,
		Name:        p.Name,
		Email:       p.Email,
		UpdatedAt:   p.UpdatedAt,
	}
}

type contactResponse struct {
	OwnerAddress   string `json:"owner_address"`
	ContactAddress string `json:"contact_address"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

func toContactResponse(c core.Contact) contactResponse {
	return contactResponse{
		OwnerAddress:   c.OwnerAddress,
		ContactAddress: c.ContactAddress,
		Name:           c.Name,
		Email:          c.Email,
		CreatedAt:      c.CreatedAt,
	}
}
