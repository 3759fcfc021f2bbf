package httphandler

import (
	"net/http"

	"github.com/teslo-shop/storefront/internal/core/service"
)

// POST /v1/ui/side-menu   toggle the side menu, returns the new flag
// GET  /v1/ui/side-menu   current flag

type UIHandler struct {
	ui *service.UIState
}

func RegisterUI(mux *http.ServeMux, ui *service.UIState) {
	h := UIHandler{ui}
	mux.HandleFunc("POST /v1/ui/side-menu", h.ToggleSideMenu)
	mux.HandleFunc("GET /v1/ui/side-menu", h.GetSideMenu)
}

func (h UIHandler) ToggleSideMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SideMenu{SideMenuOpen: h.ui.ToggleSideMenu()})
}

func (h UIHandler) GetSideMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SideMenu{SideMenuOpen: h.ui.SideMenuOpen()})
}
