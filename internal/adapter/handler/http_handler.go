package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/service"
)

// userIDHeader carries the caller identity. Token verification is done by
// an upstream collaborator; this layer only consumes the resolved id.
const userIDHeader = "X-User-ID"

type HTTPHandler struct {
	orders  *service.OrderService
	catalog *service.CatalogService
}

func NewHTTPHandler(orders *service.OrderService, catalog *service.CatalogService) *HTTPHandler {
	return &HTTPHandler{orders: orders, catalog: catalog}
}

func (h *HTTPHandler) Register(r *gin.Engine) {
	api := r.Group("/api/v1")
	api.GET("/health", h.HealthCheck)

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/products", h.CreateProduct)
	api.PATCH("/products/:id", h.UpdateProduct)
	api.DELETE("/products/:id", h.DeleteProduct)

	api.POST("/orders", h.CreateOrder)
	api.GET("/orders", h.ListMyOrders)
}

type createOrderRequest struct {
	Products    []domain.OrderItem `json:"products"`
	Description string             `json:"description"`
}

func (h *HTTPHandler) CreateOrder(c *gin.Context) {
	userID := c.GetHeader(userIDHeader)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID, req.Products, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *HTTPHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.orders.ListMyOrders(c.Request.Context(), c.GetHeader(userIDHeader))
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *HTTPHandler) ListProducts(c *gin.Context) {
	query := domain.ProductQuery{
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
		Search: c.Query("search"),
	}

	page, fromCache, err := h.catalog.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Products retrieved successfully"
	if fromCache {
		message += " (from cache)"
	}

	respondPaginated(c, message, page.Products, page.Page, page.Count, page.TotalProducts)
}

func (h *HTTPHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	created, err := h.catalog.CreateProduct(c.Request.Context(), c.GetHeader(userIDHeader), product)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Product created successfully", created)
}

func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	var update domain.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), c.GetHeader(userIDHeader), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Success! Product removed.", nil)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
