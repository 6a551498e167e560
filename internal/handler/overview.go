package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/models"
	"github.com/vjchen03/hsa/internal/util"

	"github.com/gin-gonic/gin"
)

// OverviewHandler serves the account overview and transaction history.
type OverviewHandler struct {
	Svc      *ledger.Service
	PageSize int
}

func NewOverviewHandler(svc *ledger.Service, pageSize int) *OverviewHandler {
	if pageSize <= 0 {
		pageSize = ledger.DefaultTxnLimit
	}
	return &OverviewHandler{Svc: svc, PageSize: pageSize}
}

// Overview returns the user, their account, card (masked, if any) and
// recent transactions in one call.
func (h *OverviewHandler) Overview(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email is required")
		return
	}

	user, acct, ok := resolveAccount(c, h.Svc, email)
	if !ok {
		return
	}

	var cardResp gin.H
	card, err := h.Svc.CardForAccount(acct.ID)
	switch {
	case err == nil:
		cardResp = gin.H{
			"pan":          card.MaskedPAN(),
			"expiry_month": card.ExpiryMonth,
			"expiry_year":  card.ExpiryYear,
		}
	case !errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup card failed")
		return
	}

	txns, err := h.Svc.Transactions(acct.ID, h.PageSize)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list transactions failed")
		return
	}

	qualified := []string{}
	categories := []string{}
	for _, cat := range models.AllCategories {
		categories = append(categories, string(cat))
		if cat.Qualified() {
			qualified = append(qualified, string(cat))
		}
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
		"account": gin.H{
			"id":            acct.ID,
			"balance_cents": acct.BalanceCents,
			"balance":       util.CentsToDollars(acct.BalanceCents),
		},
		"card":         cardResp, // null when no card issued
		"categories":   categories,
		"qualified":    qualified,
		"transactions": toTxnResps(txns),
	})
}

// Transactions returns the account history, newest first, bounded by
// the limit query parameter (default from config).
func (h *OverviewHandler) Transactions(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email is required")
		return
	}

	limit := h.PageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
			return
		}
		limit = n
	}

	_, acct, ok := resolveAccount(c, h.Svc, email)
	if !ok {
		return
	}

	txns, err := h.Svc.Transactions(acct.ID, limit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list transactions failed")
		return
	}

	util.Success(c, util.Response{
		"transactions": toTxnResps(txns),
	})
}
