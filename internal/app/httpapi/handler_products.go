package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/R3E-Network/commerce_layer/internal/app/storage"
)

func (h *handler) productRoutes(r *mux.Router) {
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/in-stock", h.productsInStock).Methods(http.MethodGet)
	r.HandleFunc("/products/category/{category}", h.productsByCategory).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.replaceProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", h.patchProduct).Methods(http.MethodPatch)
	r.HandleFunc("/products/{id}", h.deleteProduct).Methods(http.MethodDelete)
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Products.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) productsInStock(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Products.ListInStock(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Products.ListByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := bind(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.app.Products.Create(r.Context(), req.product())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handler) replaceProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := bind(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.app.Products.Replace(r.Context(), mux.Vars(r)["id"], req.product())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handler) patchProduct(w http.ResponseWriter, r *http.Request) {
	var req productPatchRequest
	if err := bind(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.app.Products.Patch(r.Context(), mux.Vars(r)["id"], req.patch())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok, err := h.app.Products.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, fmt.Errorf("product %s: %w", id, storage.ErrNotFound))
		return
	}
	deleted(w, "Product")
}
