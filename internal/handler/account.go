package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/middleware"
	"github.com/vjchen03/hsa/internal/util"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves registration, deposits and card issuance.
type AccountHandler struct {
	Svc *ledger.Service
}

func NewAccountHandler(svc *ledger.Service) *AccountHandler {
	return &AccountHandler{Svc: svc}
}

// ---------- register ----------

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	FullName string `json:"full_name" binding:"required,max=128"`
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateFullName(req.FullName); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	user, created, err := h.Svc.Register(req.Email, strings.TrimSpace(req.FullName))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "register failed")
		return
	}
	c.Set(middleware.CurrentUserIDKey, user.ID)

	msg := "loaded"
	if created {
		msg = "created"
	}
	util.Success(c, util.Response{
		"message": msg,
		"created": created,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"full_name":  user.FullName,
			"created_at": user.CreatedAt,
		},
	})
}

// ---------- deposit ----------

type depositReq struct {
	Email  string `json:"email" binding:"required"`
	Amount string `json:"amount" binding:"required"` // decimal dollars, e.g. "50.00"
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	var req depositReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cents, err := util.DollarsToCents(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}
	if cents <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "deposit amount must be positive")
		return
	}

	_, acct, ok := resolveAccount(c, h.Svc, req.Email)
	if !ok {
		return
	}

	acct, err = h.Svc.Deposit(acct.ID, cents)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "deposit amount must be positive")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "deposit failed")
		return
	}

	util.Success(c, util.Response{
		"message":       "deposited",
		"balance_cents": acct.BalanceCents,
		"balance":       util.CentsToDollars(acct.BalanceCents),
	})
}

// ---------- issue card ----------

type issueCardReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *AccountHandler) IssueCard(c *gin.Context) {
	var req issueCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	_, acct, ok := resolveAccount(c, h.Svc, req.Email)
	if !ok {
		return
	}

	card, newlyIssued, err := h.Svc.IssueCard(acct.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue card failed")
		return
	}

	msg := "card_exists"
	cardResp := gin.H{
		"pan":          card.MaskedPAN(),
		"expiry_month": card.ExpiryMonth,
		"expiry_year":  card.ExpiryYear,
	}
	if newlyIssued {
		msg = "card_issued"
		// full PAN and CVV are shown once, at issuance
		cardResp["pan"] = card.PAN
		cardResp["cvv"] = card.CVV
	}

	util.Success(c, util.Response{
		"message":      msg,
		"newly_issued": newlyIssued,
		"card":         cardResp,
	})
}
