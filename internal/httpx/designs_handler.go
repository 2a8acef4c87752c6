package httpx

import (
	"net/http"
	"strings"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/go-chi/chi/v5"
)

type DesignsHandler struct {
	Catalog *catalog.Catalog
}

func (h *DesignsHandler) Register(r chi.Router) {
	r.Get("/designs", h.listDesigns)
	r.Get("/designs/{id}", h.getDesign)
	r.Get("/drafts/new", h.newDraft)
}

// listDesigns: ?category=Premium|Standard&channel=digital|print|cetak, "all" = semua.
func (h *DesignsHandler) listDesigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	if strings.EqualFold(category, "all") {
		category = ""
	}
	var ch catalog.Channel
	if raw := strings.TrimSpace(q.Get("channel")); raw != "" && !strings.EqualFold(raw, "all") {
		c, err := catalog.ParseChannel(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown channel")
			return
		}
		ch = c
	}
	writeJSON(w, http.StatusOK, h.Catalog.Filter(category, ch))
}

func (h *DesignsHandler) getDesign(w http.ResponseWriter, r *http.Request) {
	e, ok := h.Catalog.FindByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "design not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// newDraft returns the empty session draft, preselected when ?design= is given.
func (h *DesignsHandler) newDraft(w http.ResponseWriter, r *http.Request) {
	d := orders.NewDraft()
	if id := r.URL.Query().Get("design"); id != "" {
		e, ok := h.Catalog.FindByID(id)
		if !ok {
			writeError(w, http.StatusNotFound, "design not found")
			return
		}
		d = d.WithDesign(e)
	}
	writeJSON(w, http.StatusOK, d)
}
