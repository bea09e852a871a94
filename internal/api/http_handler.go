package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"catalog-service/internal/catalog"
	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

// HTTPHandler exposes the catalog operation set over HTTP. All reads and
// mutations go through the data context so the cache stays coherent.
type HTTPHandler struct {
	data     *catalog.Catalog
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler over the given data context.
func NewHTTPHandler(data *catalog.Catalog) *HTTPHandler {
	return &HTTPHandler{
		data:     data,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // avoid writing a body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			zap.L().Error("failed to encode JSON response", zap.Error(err))
		}
	}
}

// --- Category handlers ---

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	created, err := h.data.AddCategory(r.Context(), &domain.Category{Name: input.Name})
	if err != nil {
		zap.L().Error("add category failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.data.Categories())
}

func (h *HTTPHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	category, err := h.data.GetCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
			return
		}
		zap.L().Error("get category failed", zap.String("id", categoryID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve category")
		return
	}
	respondWithJSON(w, http.StatusOK, category)
}

func (h *HTTPHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	var input CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// The store treats an unknown id as a no-op, so check existence here to
	// give the caller a proper 404.
	if _, err := h.data.GetCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
			return
		}
		zap.L().Error("category existence check failed", zap.String("id", categoryID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Error checking category existence")
		return
	}

	updated, err := h.data.UpdateCategory(r.Context(), &domain.Category{ID: categoryID, Name: input.Name})
	if err != nil {
		zap.L().Error("update category failed", zap.String("id", categoryID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	if err := h.data.DeleteCategory(r.Context(), categoryID); err != nil {
		zap.L().Error("delete category failed", zap.String("id", categoryID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	products, err := h.data.ProductsByCategory(r.Context(), categoryID)
	if err != nil {
		zap.L().Error("list products by category failed", zap.String("id", categoryID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

// --- Product handlers ---

// ProductInput is the payload for creating or updating a product. Quantity
// is a pointer so that an explicit zero is distinguishable from a missing
// field.
type ProductInput struct {
	Name              string  `json:"name" validate:"required,max=255"`
	Image             *string `json:"image" validate:"omitempty,max=2048"`
	Quantity          *int    `json:"quantity" validate:"required,gte=0"`
	LowStockThreshold *int    `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	Category          *string `json:"category" validate:"omitempty"`
}

func (in *ProductInput) toDomain(id string) *domain.Product {
	return &domain.Product{
		ID:                id,
		Name:              in.Name,
		Image:             in.Image,
		Quantity:          *in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		Category:          in.Category,
	}
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	created, err := h.data.AddProduct(r.Context(), input.toDomain(""))
	if err != nil {
		zap.L().Error("add product failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.data.Products())
}

func (h *HTTPHandler) ListLowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.data.LowStockProducts(r.Context())
	if err != nil {
		zap.L().Error("list low stock products failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve low stock products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.data.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		zap.L().Error("get product failed", zap.String("id", productID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var input ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if _, err := h.data.GetProduct(r.Context(), productID); err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		zap.L().Error("product existence check failed", zap.String("id", productID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Error checking product existence")
		return
	}

	updated, err := h.data.UpdateProduct(r.Context(), input.toDomain(productID))
	if err != nil {
		zap.L().Error("update product failed", zap.String("id", productID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.data.DeleteProduct(r.Context(), productID); err != nil {
		zap.L().Error("delete product failed", zap.String("id", productID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Dashboard handler ---

// DashboardResponse bundles the summary totals with the category
// distribution chart data.
type DashboardResponse struct {
	Summary      catalog.Summary         `json:"summary"`
	Distribution []catalog.CategorySlice `json:"distribution"`
}

func (h *HTTPHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, DashboardResponse{
		Summary:      h.data.Summary(),
		Distribution: h.data.CategoryDistribution(),
	})
}

// --- Data handlers (export / import / reset) ---

func (h *HTTPHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	snap, err := h.data.ExportSnapshot(r.Context())
	if err != nil {
		zap.L().Error("export snapshot failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to export data")
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

func (h *HTTPHandler) ImportData(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.data.ImportSnapshot(r.Context(), &snap); err != nil {
		zap.L().Error("import snapshot failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to import data")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) ClearAllData(w http.ResponseWriter, r *http.Request) {
	if err := h.data.ClearAll(r.Context()); err != nil {
		zap.L().Error("clear all data failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to clear data")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) ClearProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.data.ClearProducts(r.Context()); err != nil {
		zap.L().Error("clear products failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to clear products")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Route registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Post("/", h.CreateCategory)
		r.Get("/", h.ListCategories)
		r.Route("/{categoryId}", func(r chi.Router) {
			r.Get("/", h.GetCategoryByID)
			r.Put("/", h.UpdateCategory)
			r.Delete("/", h.DeleteCategory)
			r.Get("/products", h.ListProductsByCategory)
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		// Before the {productId} route so "low-stock" is not read as an id.
		r.Get("/low-stock", h.ListLowStockProducts)

		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", h.GetProductByID)
			r.Put("/", h.UpdateProduct)
			r.Delete("/", h.DeleteProduct)
		})
	})

	r.Get("/api/v1/dashboard", h.GetDashboard)

	r.Route("/api/v1/data", func(r chi.Router) {
		r.Get("/", h.ExportData)
		r.Put("/", h.ImportData)
		r.Delete("/", h.ClearAllData)
		r.Delete("/products", h.ClearProducts)
	})
}
