package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type CreditHandler struct {
	credits service.CreditService
}

func NewCreditHandler(credits service.CreditService) *CreditHandler {
	return &CreditHandler{credits: credits}
}

type createSingleRequest struct {
	domain.Credit
	Draft *domain.GuaranteeDraft `json:"guarantee_draft,omitempty"`
}

func (h *CreditHandler) CreateSingle(w http.ResponseWriter, r *http.Request) {
	var req createSingleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	credit, err := h.credits.CreateSingle(r.Context(), actorFrom(r), service.CreateSingleCreditInput{
		Credit: req.Credit,
		Draft:  req.Draft,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, credit)
}

type createSplitRequest struct {
	domain.Credit
	DownPayment decimal.Decimal          `json:"down_payment"`
	SettledOn   time.Time                `json:"settled_on,omitempty"`
	Cheques     []domain.GuaranteeCheque `json:"cheques"`
}

func (h *CreditHandler) CreateSplit(w http.ResponseWriter, r *http.Request) {
	var req createSplitRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	credit, err := h.credits.CreateSplit(r.Context(), actorFrom(r), service.CreateSplitCreditInput{
		Credit:      req.Credit,
		DownPayment: req.DownPayment,
		SettledOn:   req.SettledOn,
		Cheques:     req.Cheques,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, credit)
}

func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	detail, err := h.credits.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *CreditHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var credit domain.Credit
	if err := decodeBody(r, &credit); err != nil {
		respondError(w, err)
		return
	}
	credit.ID = id
	if err := h.credits.Update(r.Context(), actorFrom(r), &credit); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, credit)
}

func (h *CreditHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	if err := h.credits.Delete(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CreditHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	credits, total, err := h.credits.List(r.Context(),
		queryInt64(r, "client_id"),
		queryInt64(r, "agent_id"),
		domain.CreditType(r.URL.Query().Get("type")),
		r.URL.Query().Get("search"),
		page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: credits, Total: total, Page: page, PageSize: pageSize})
}

type createPlanRequest struct {
	Parts      int                  `json:"parts"`
	Frequency  domain.PlanFrequency `json:"frequency"`
	FirstDueOn time.Time            `json:"first_due_on"`
	Mode       domain.PaymentMode   `json:"mode,omitempty"`
}

func (h *CreditHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var req createPlanRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	installments, err := h.credits.CreatePlan(r.Context(), actorFrom(r), service.CreatePlanInput{
		CreditID:   id,
		Parts:      req.Parts,
		Frequency:  req.Frequency,
		FirstDueOn: req.FirstDueOn,
		Mode:       req.Mode,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, installments)
}
