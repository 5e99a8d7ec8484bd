package http

import (
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/cart"
	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/notify"
	"github.com/Axalon174/coffee-shop-manager/internal/services"
	"github.com/Axalon174/coffee-shop-manager/internal/session"

	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	MenuItemID uint64 `json:"menu_item_id" binding:"required"`
	Note       string `json:"note" binding:"max=500"`
}

type SelectTableRequest struct {
	TableID uint64 `json:"table_id" binding:"required"`
}

type SubmitOrderRequest struct {
	StaffID uint64 `json:"staff_id" binding:"required"`
}

type SessionResponse struct {
	ID         string                   `json:"id"`
	Items      []cart.LineItem          `json:"items"`
	Total      decimal.Decimal          `json:"total"`
	Table      *domain.Table            `json:"table"`
	TableLabel string                   `json:"table_label"`
	State      services.SubmissionState `json:"state"`
	InFlight   bool                     `json:"in_flight"`
	CreatedAt  time.Time                `json:"created_at"`
}

type SubmitOrderResponse struct {
	Accepted   bool             `json:"accepted"`
	Outcome    services.Outcome `json:"outcome"`
	Order      *domain.Order    `json:"order,omitempty"`
	TableLabel string           `json:"table_label,omitempty"`
	Warning    string           `json:"warning,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type NotificationsResponse struct {
	Current *notify.Notification  `json:"current"`
	History []notify.Notification `json:"history"`
}

func newSessionResponse(s *session.Session) SessionResponse {
	snap := s.Cart.Snapshot()
	resp := SessionResponse{
		ID:         s.ID,
		Items:      snap.Items,
		Total:      snap.Total,
		TableLabel: s.Tables.CurrentLabel(),
		State:      s.Coordinator.State(),
		InFlight:   s.Coordinator.InFlight(),
		CreatedAt:  s.CreatedAt,
	}
	if resp.Items == nil {
		resp.Items = []cart.LineItem{}
	}
	if t, ok := s.Tables.Current(); ok {
		resp.Table = &t
	}
	return resp
}
