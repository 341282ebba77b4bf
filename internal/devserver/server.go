// Package devserver is an in-memory stand-in for the storefront backend. It
// implements the REST contract the client consumes — nothing more — so the
// SDK and CLI can be exercised without the real service. It is not a
// production backend and keeps no durable state.
package devserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/usrahul1/trin/internal/catalog"
	"github.com/usrahul1/trin/internal/httpx"
	"github.com/usrahul1/trin/internal/order"
)

type Server struct {
	products *productRepo
	orders   *orderRepo
	secret   []byte
}

func New(secret []byte) *Server {
	return &Server{
		products: newProductRepo(),
		orders:   newOrderRepo(),
		secret:   secret,
	}
}

// Seed loads products directly into the repo, bypassing the admin routes.
func (s *Server) Seed(products []catalog.Product) {
	for _, p := range products {
		s.products.Create(p)
	}
}

// Router builds the gin engine with every route of the contract.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), bearerClaims(s.secret))

	api := r.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.POST("/products", requireAdmin, s.createProduct)
		api.PUT("/products/:id", requireAdmin, s.updateProduct)
		api.DELETE("/products/:id", requireAdmin, s.deleteProduct)

		api.GET("/orders", requireAdmin, s.listOrders)
		api.GET("/orders/:id", s.getOrder)
		api.POST("/orders", s.createOrder)
		api.PUT("/orders/:id", requireAdmin, s.updateOrderStatus)
	}
	return r
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.products.List())
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := s.products.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	var in catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(in.Name) == "" || in.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required, stock must be >= 0"})
		return
	}
	p := s.products.Create(catalog.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	})
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p, err := s.products.Update(id, in)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.products.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.orders.List())
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	o, err := s.orders.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) createOrder(c *gin.Context) {
	var in order.CreateOrderRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(in.BuyerName) == "" ||
		strings.TrimSpace(in.BuyerContact) == "" ||
		strings.TrimSpace(in.DeliveryAddress) == "" ||
		strings.TrimSpace(in.DeliveryDate) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "buyer_name, buyer_contact, delivery_address and delivery_date are required"})
		return
	}
	if len(in.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one item"})
		return
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be positive"})
			return
		}
	}

	o := s.orders.Create(order.Order{
		BuyerName:       in.BuyerName,
		BuyerContact:    in.BuyerContact,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryDate:    in.DeliveryDate,
		Notes:           in.Notes,
		UserID:          in.UserID,
		UserEmail:       in.UserEmail,
		Items:           in.Items,
	})
	c.JSON(http.StatusCreated, o)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	status, err := order.ParseStatus(string(in.Status))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.orders.UpdateStatus(id, status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	o, _ := s.orders.Get(id)
	c.JSON(http.StatusOK, o)
}
