package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartapp "github.com/geministore/storefront/internal/cart/app"
	catalogapp "github.com/geministore/storefront/internal/catalog/app"
	checkoutapp "github.com/geministore/storefront/internal/checkout/app"
	"github.com/geministore/storefront/pkg/metrics"
)

type Handler struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Store
	checkout *checkoutapp.Service
	metrics  *metrics.StorefrontMetrics
}

func NewHandler(catalog *catalogapp.Service, cart *cartapp.Store, checkout *checkoutapp.Service, m *metrics.StorefrontMetrics) *Handler {
	return &Handler{catalog: catalog, cart: cart, checkout: checkout, metrics: m}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/categories", h.ListCategories)

		api.GET("/cart", h.GetCart)
		api.GET("/cart/events", h.GetCartEvents)
		api.POST("/cart/items", h.AddItem)
		api.PATCH("/cart/items", h.UpdateQuantity)
		api.DELETE("/cart/items", h.RemoveItem)
		api.POST("/cart/clear", h.ClearCart)
		api.POST("/cart/discount", h.ApplyDiscount)
		api.POST("/cart/reload", h.ReloadCart)

		api.POST("/checkout", h.StartCheckout)
		api.GET("/checkout/:id", h.GetCheckout)
		api.POST("/checkout/:id/next", h.CheckoutNext)
		api.POST("/checkout/:id/prev", h.CheckoutPrev)
		api.POST("/checkout/:id/order", h.PlaceOrder)
	}

	return r
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, body := statusFromError(err)
	c.JSON(status, gin.H{"error": body})
}

func (h *Handler) countMutation(op string) {
	if h.metrics != nil {
		h.metrics.CartMutations.WithLabelValues(op).Inc()
	}
}

// ListProducts handles search, filtering and sorting through query
// parameters: q, category, in_stock, min_rating, price_min, price_max,
// sort.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if q := c.Query("q"); q != "" {
		found, err := h.catalog.Search(ctx, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		found = catalogapp.Sort(found, catalogapp.SortKey(c.Query("sort")))
		c.JSON(http.StatusOK, gin.H{"products": toProductDTOs(found)})
		return
	}

	filter := catalogapp.Filter{
		Category: c.Query("category"),
		InStock:  c.Query("in_stock") == "true",
	}
	if v := c.Query("min_rating"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = r
		}
	}
	if v := c.Query("price_min"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.PriceMin = &d
		}
	}
	if v := c.Query("price_max"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.PriceMax = &d
		}
	}

	found, err := h.catalog.Filter(ctx, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	found = catalogapp.Sort(found, catalogapp.SortKey(c.Query("sort")))
	c.JSON(http.StatusOK, gin.H{"products": toProductDTOs(found)})
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductDTO(p))
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

func (h *Handler) GetCartEvents(c *gin.Context) {
	events, err := h.cart.Events(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

type cartItemRequest struct {
	ProductID string            `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Variant   map[string]string `json:"variant"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "INVALID_ARGUMENT", Message: "invalid body"}})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.cart.AddItem(c.Request.Context(), req.ProductID, req.Quantity, req.Variant); err != nil {
		h.fail(c, err)
		return
	}
	h.countMutation("add")
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req cartItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "INVALID_ARGUMENT", Message: "invalid body"}})
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), req.ProductID, req.Quantity, req.Variant); err != nil {
		h.fail(c, err)
		return
	}
	h.countMutation("update")
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "INVALID_ARGUMENT", Message: "invalid body"}})
		return
	}

	if err := h.cart.RemoveItem(c.Request.Context(), req.ProductID, req.Variant); err != nil {
		h.fail(c, err)
		return
	}
	h.countMutation("remove")
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.countMutation("clear")
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

type discountRequest struct {
	Code string `json:"code"`
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "INVALID_ARGUMENT", Message: "invalid body"}})
		return
	}

	code, percent, err := checkoutapp.LookupDiscount(req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}

	if _, err := h.cart.ApplyDiscount(c.Request.Context(), code, percent); err != nil {
		h.fail(c, err)
		return
	}
	h.countMutation("discount")
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

// ReloadCart re-hydrates from durable storage; the visibility-regained
// hook for consumers that want cross-tab best-effort consistency.
func (h *Handler) ReloadCart(c *gin.Context) {
	h.cart.Reload(c.Request.Context())
	c.JSON(http.StatusOK, toCartSummaryDTO(h.cart.Summary()))
}

func (h *Handler) StartCheckout(c *gin.Context) {
	d := h.checkout.Start()
	c.JSON(http.StatusCreated, toDraftDTO(d))
}

func (h *Handler) GetCheckout(c *gin.Context) {
	d, err := h.checkout.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftDTO(d))
}

type stepRequest struct {
	Fields map[string]string `json:"fields"`
}

func (h *Handler) CheckoutNext(c *gin.Context) {
	var req stepRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "INVALID_ARGUMENT", Message: "invalid body"}})
		return
	}

	d, err := h.checkout.Next(c.Param("id"), req.Fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftDTO(d))
}

func (h *Handler) CheckoutPrev(c *gin.Context) {
	d, err := h.checkout.Prev(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftDTO(d))
}

type orderRequest struct {
	TermsAccepted bool `json:"terms_accepted"`
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req orderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: "INVALID_ARGUMENT", Message: "invalid body"}})
		return
	}

	conf, err := h.checkout.PlaceOrder(c.Request.Context(), c.Param("id"), req.TermsAccepted)
	if err != nil {
		if h.metrics != nil {
			h.metrics.Orders.WithLabelValues("failed").Inc()
		}
		h.fail(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.Orders.WithLabelValues("confirmed").Inc()
	}
	c.JSON(http.StatusOK, toConfirmationDTO(conf))
}
