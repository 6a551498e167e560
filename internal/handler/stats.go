package handler

import (
	"net/http"

	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/models"
	"github.com/vjchen03/hsa/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves spending summaries per category.
type StatsHandler struct {
	Svc *ledger.Service
	DB  *gorm.DB
}

func NewStatsHandler(svc *ledger.Service, db *gorm.DB) *StatsHandler {
	return &StatsHandler{Svc: svc, DB: db}
}

// CategoryStats sums approved spending per category plus total deposits
// for one account.
func (h *StatsHandler) CategoryStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email is required")
		return
	}

	_, acct, ok := resolveAccount(c, h.Svc, email)
	if !ok {
		return
	}

	type categoryStat struct {
		Category   string `json:"category"`
		SpentCents int64  `json:"spent_cents"`
		Spent      string `json:"spent"`
		Count      int64  `json:"count"`
	}

	var rows []categoryStat
	if err := h.DB.Model(&models.Transaction{}).
		Select("category, SUM(amount_cents) AS spent_cents, COUNT(*) AS count").
		Where("account_id = ? AND approved = ? AND category <> ?",
			acct.ID, true, models.CategoryDeposit).
		Group("category").
		Order("spent_cents DESC").
		Scan(&rows).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var totalSpent int64
	for i := range rows {
		rows[i].Spent = util.CentsToDollars(rows[i].SpentCents)
		totalSpent += rows[i].SpentCents
	}

	var totalDeposited int64
	if err := h.DB.Model(&models.Transaction{}).
		Where("account_id = ? AND category = ?", acct.ID, models.CategoryDeposit).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totalDeposited).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, util.Response{
		"by_category":     rows,
		"total_spent":     util.CentsToDollars(totalSpent),
		"total_deposited": util.CentsToDollars(totalDeposited),
		"balance":         util.CentsToDollars(acct.BalanceCents),
	})
}
