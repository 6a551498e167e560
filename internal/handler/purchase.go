package handler

import (
	"errors"
	"net/http"

	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/models"
	"github.com/vjchen03/hsa/internal/util"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler serves purchase attempts.
type PurchaseHandler struct {
	Svc *ledger.Service
}

func NewPurchaseHandler(svc *ledger.Service) *PurchaseHandler {
	return &PurchaseHandler{Svc: svc}
}

type purchaseReq struct {
	Email    string `json:"email" binding:"required"`
	Amount   string `json:"amount" binding:"required"` // decimal dollars
	Category string `json:"category" binding:"required"`
	Memo     string `json:"memo"`
}

func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req purchaseReq
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
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "purchase amount must be positive")
		return
	}

	// "deposit" and anything outside the closed set stop here
	category := models.ExpenseCategory(req.Category)
	if !category.Purchasable() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid purchase category")
		return
	}
	if err := util.ValidateMemo(req.Memo); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	_, acct, ok := resolveAccount(c, h.Svc, req.Email)
	if !ok {
		return
	}

	approved, txn, err := h.Svc.Purchase(acct.ID, cents, category, req.Memo)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "purchase amount must be positive")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "purchase failed")
		return
	}

	msg := "purchase_no"
	if approved {
		msg = "purchase_ok"
	}
	util.Success(c, util.Response{
		"message":     msg,
		"approved":    approved,
		"transaction": toTxnResp(txn),
	})
}
