package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/cache"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/services"
	"github.com/Axalon174/coffee-shop-manager/internal/session"
	"github.com/Axalon174/coffee-shop-manager/internal/tables"

	"github.com/gin-gonic/gin"
)

const tableOrdersTTL = 10 * time.Second

type Handler struct {
	catalog  *services.CatalogService
	orders   *services.OrderService
	sessions *session.Manager
	cache    cache.Cache
	log      *logger.Logger
}

func NewHandler(catalog *services.CatalogService, orders *services.OrderService, sessions *session.Manager, c cache.Cache, log *logger.Logger) *Handler {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{catalog: catalog, orders: orders, sessions: sessions, cache: c, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	r.GET("/menu", h.ListMenu)
	r.GET("/staff", h.ListStaff)
	r.GET("/tables", h.ListTables)
	r.GET("/tables/:id/orders", h.GetOrdersByTable)
	r.GET("/orders/:id", h.GetOrder)

	s := r.Group("/sessions")
	s.POST("", h.CreateSession)
	s.GET("/:id", h.GetSession)
	s.DELETE("/:id", h.CloseSession)
	s.POST("/:id/cart", h.AddCartItem)
	s.DELETE("/:id/cart/:localId", h.RemoveCartItem)
	s.PUT("/:id/table", h.SelectTable)
	s.DELETE("/:id/table", h.ClearTable)
	s.POST("/:id/submit", h.SubmitOrder)
	s.GET("/:id/notifications", h.ListNotifications)
	s.DELETE("/:id/notifications/current", h.DismissNotification)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListMenu(c *gin.Context) {
	menu, err := h.catalog.ListMenu(c.Request.Context())
	if err != nil {
		h.internalError(c, "menu_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *Handler) ListStaff(c *gin.Context) {
	var (
		staff []domain.Staff
		err   error
	)
	if active, _ := strconv.ParseBool(c.Query("active")); active {
		staff, err = h.catalog.ActiveStaff(c.Request.Context())
	} else {
		staff, err = h.catalog.ListStaff(c.Request.Context())
	}
	if err != nil {
		h.internalError(c, "staff_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *Handler) ListTables(c *gin.Context) {
	list, err := h.catalog.ListTables(c.Request.Context())
	if err != nil {
		h.internalError(c, "tables_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if errors.Is(err, services.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, "order_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrdersByTable(c *gin.Context) {
	tableID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := tableOrdersKey(tableID)

	var cached []domain.Order
	if found, err := h.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	orders, err := h.orders.GetOrdersByTable(ctx, tableID)
	if err != nil {
		h.internalError(c, "table_orders_failed", err)
		return
	}
	if err := h.cache.Set(ctx, cacheKey, orders, tableOrdersTTL); err != nil {
		h.log.Warn("cache_set_failed", "table orders not cached", "key", cacheKey, "error", err.Error())
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) CreateSession(c *gin.Context) {
	s, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		h.log.Error("session_create_failed", "could not open session", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newSessionResponse(s))
}

func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddCartItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.catalog.MenuItem(c.Request.Context(), req.MenuItemID)
	if errors.Is(err, services.ErrMenuItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, "menu_lookup_failed", err)
		return
	}

	line := s.Cart.Add(item, req.Note)
	c.JSON(http.StatusCreated, gin.H{"item": line, "total": s.Cart.Total()})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Cart.Remove(c.Param("localId"))
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *Handler) SelectTable(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req SelectTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.Tables.SelectByID(req.TableID); err != nil {
		if errors.Is(err, tables.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.internalError(c, "table_select_failed", err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *Handler) ClearTable(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Tables.Clear()
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *Handler) SubmitOrder(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Coordinator.Submit(c.Request.Context(), req.StaffID)
	resp := SubmitOrderResponse{Outcome: result.Outcome, TableLabel: result.TableLabel}

	switch {
	case errors.Is(err, services.ErrNoTableSelected):
		resp.Error = err.Error()
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, services.ErrOrderNotCreated), errors.Is(err, services.ErrOrderItemsNotCreated):
		resp.Accepted = true
		resp.Error = err.Error()
		c.JSON(http.StatusBadGateway, resp)
	case err != nil:
		h.internalError(c, "order_submit_failed", err)
	case !result.Outcome.Accepted():
		c.JSON(http.StatusAccepted, resp)
	default:
		resp.Accepted = true
		resp.Order = result.Order
		if result.TableStatusErr != nil {
			resp.Warning = result.TableStatusErr.Error()
		}
		if result.Order != nil {
			if err := h.cache.Delete(c.Request.Context(), tableOrdersKey(result.Order.TableID)); err != nil {
				h.log.Warn("cache_invalidate_failed", "table orders cache not invalidated", "error", err.Error())
			}
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	resp := NotificationsResponse{History: s.Feed.List()}
	if n, ok := s.Feed.Current(); ok {
		resp.Current = &n
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DismissNotification(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Feed.Dismiss()
	c.Status(http.StatusNoContent)
}

func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}

func (h *Handler) internalError(c *gin.Context, action string, err error) {
	h.log.Error(action, "request failed", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", param)})
		return 0, false
	}
	return id, true
}

func tableOrdersKey(tableID uint64) string {
	return "pos:orders:table:" + strconv.FormatUint(tableID, 10)
}
