package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/R3E-Network/commerce_layer/internal/app/storage"
)

func (h *handler) orderRoutes(r *mux.Router) {
	r.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/user/{userId}", h.ordersByUser).Methods(http.MethodGet)
	r.HandleFunc("/orders/status/{status}", h.ordersByStatus).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.replaceOrder).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id}", h.patchOrder).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{id}", h.deleteOrder).Methods(http.MethodDelete)
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Orders.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) ordersByUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Orders.ListByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) ordersByStatus(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Orders.ListByStatus(r.Context(), mux.Vars(r)["status"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.app.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := bind(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	o, err := h.app.Orders.Create(r.Context(), req.UserID, req.items())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *handler) replaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := bind(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	o, err := h.app.Orders.Replace(r.Context(), mux.Vars(r)["id"], req.UserID, req.items())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *handler) patchOrder(w http.ResponseWriter, r *http.Request) {
	var req orderPatchRequest
	if err := bind(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	o, err := h.app.Orders.Patch(r.Context(), mux.Vars(r)["id"], req.patch())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok, err := h.app.Orders.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, fmt.Errorf("order %s: %w", id, storage.ErrNotFound))
		return
	}
	deleted(w, "Order")
}
