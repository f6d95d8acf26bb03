package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/dealdesk/internal/export"
	"github.com/Simplici0/dealdesk/internal/pricing"
	"github.com/Simplici0/dealdesk/internal/store"
)

// dealView is a saved deal plus its recomputed result. Problem is set when
// the deal is not complete enough for its mode yet.
type dealView struct {
	Deal    store.Deal         `json:"deal"`
	Result  pricing.DealResult `json:"result"`
	Ready   bool               `json:"ready"`
	Problem string             `json:"problem,omitempty"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	result, err := pricing.Compute(req.lineItems(), req.Settings.toSettings())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	settings := req.Settings.toSettings()
	result, err := pricing.Compute(req.lineItems(), settings)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeText(w, export.Format(result, settings))
}

func (s *server) handleToggleMarginTarget(w http.ResponseWriter, r *http.Request) {
	var req marginTargetRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	item, err := pricing.ToggleMarginTarget(req.Item.toLineItem(), req.Target)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeSuccess(w, http.StatusOK, item)
}

func (s *server) handleSetPrice(w http.ResponseWriter, r *http.Request) {
	var req setPriceRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeSuccess(w, http.StatusOK, pricing.SetRawPrice(req.Item.toLineItem(), req.RawPrice))
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.store.ListPresets(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeSuccess(w, http.StatusOK, presets)
}

func (s *server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := s.store.ListDeals(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeSuccess(w, http.StatusOK, deals)
}

func (s *server) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	s.saveDeal(w, r, "", http.StatusCreated)
}

func (s *server) handleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetDeal(r.Context(), id); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	s.saveDeal(w, r, id, http.StatusOK)
}

// saveDeal stores the posted snapshot as is; incomplete deals are saved too
// so a seller can come back to them.
func (s *server) saveDeal(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req saveDealRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	items := req.lineItems()
	settings := req.Settings.toSettings()
	result := pricing.AggregateDeal(items, settings)

	saved, err := s.store.SaveDeal(r.Context(), store.Deal{
		ID:            id,
		Title:         req.Title,
		Notes:         req.Notes,
		Settings:      settings,
		Items:         items,
		CustomerTotal: pricing.Round2(result.CustomerTotal),
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	ctx := s.log.WithDealID(r.Context(), saved.ID)
	s.log.Info(ctx, "deal saved")
	writeSuccess(w, status, newDealView(saved))
}

func (s *server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := s.store.GetDeal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newDealView(deal))
}

func (s *server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteDeal(r.Context(), id); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.log.Info(s.log.WithDealID(r.Context(), id), "deal deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleExportDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := s.store.GetDeal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	result, err := pricing.Compute(deal.Items, deal.Settings)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeText(w, export.Format(result, deal.Settings))
}

func newDealView(deal store.Deal) dealView {
	view := dealView{
		Deal:   deal,
		Result: pricing.AggregateDeal(deal.Items, deal.Settings),
		Ready:  true,
	}
	if err := pricing.Validate(deal.Items, deal.Settings); err != nil {
		view.Ready = false
		view.Problem = err.Error()
	}
	return view
}
