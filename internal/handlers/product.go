package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-shopchat/internal/httpx"
	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/services"
	"github.com/diewo77/go-shopchat/internal/store"
)

type ProductHandler struct {
	Store   *store.Store
	Catalog *services.CatalogService
}

func NewProductHandler(st *store.Store, catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{Store: st, Catalog: catalog}
}

// productResponse adds the derived availability flag to the stored fields.
type productResponse struct {
	models.Product
	IsAvailable bool `json:"is_available"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{Product: p, IsAvailable: p.IsAvailable()}
}

func toProductResponses(products []models.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type productInput struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	StockQuantity   int        `json:"stock_quantity"`
	Category        string     `json:"category"`
	Image           string     `json:"image"`
	ManufactureDate *time.Time `json:"manufacture_date"`
}

func (in productInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity
	p.Category = in.Category
	p.Image = in.Image
	if in.ManufactureDate != nil {
		p.ManufactureDate = *in.ManufactureDate
	} else {
		p.ManufactureDate = time.Time{}
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	// ?name= doubles as a search filter on the collection route.
	if name := r.URL.Query().Get("name"); name != "" {
		products, err := h.Catalog.SearchByName(name)
		if err != nil {
			writeError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, toProductResponses(products))
		return
	}
	products, err := h.Store.ListProducts()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var p models.Product
	in.apply(&p)
	if err := h.Store.CreateProduct(&p); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	p, err := h.Store.GetProduct(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(*p))
}

// Update replaces every field of an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	p, err := h.Store.GetProduct(id)
	if err != nil {
		writeError(w, err)
		return
	}
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in.apply(p)
	if err := h.Store.UpdateProduct(p); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(*p))
}

// Patch updates only the fields present in the request body.
func (h *ProductHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	p, err := h.Store.GetProduct(id)
	if err != nil {
		writeError(w, err)
		return
	}
	var in struct {
		Name            *string    `json:"name"`
		Description     *string    `json:"description"`
		Price           *float64   `json:"price"`
		StockQuantity   *int       `json:"stock_quantity"`
		Category        *string    `json:"category"`
		Image           *string    `json:"image"`
		ManufactureDate *time.Time `json:"manufacture_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.ManufactureDate != nil {
		p.ManufactureDate = *in.ManufactureDate
	}
	if err := h.Store.UpdateProduct(p); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(*p))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteProduct(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OutOfStock lists products with zero stock. An empty catalog segment is a
// normal 200 with an empty array.
func (h *ProductHandler) OutOfStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.OutOfStock()
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}

// ByName lists products whose name contains the path fragment,
// case-insensitively.
func (h *ProductHandler) ByName(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.SearchByName(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}

// PriceRange lists products within [min_price, max_price]. Both bounds come
// from the query string and must be numeric.
func (h *ProductHandler) PriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, err := parsePriceParam(r, "min_price")
	if err != nil {
		writeError(w, err)
		return
	}
	maxPrice, err := parsePriceParam(r, "max_price")
	if err != nil {
		writeError(w, err)
		return
	}
	products, err := h.Catalog.PriceRange(minPrice, maxPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponses(products))
}

func parsePriceParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", services.ErrInvalidArgument, name)
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric", services.ErrInvalidArgument, name)
	}
	return val, nil
}
