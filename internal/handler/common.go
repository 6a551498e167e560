package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/middleware"
	"github.com/vjchen03/hsa/internal/models"
	"github.com/vjchen03/hsa/internal/util"

	"github.com/gin-gonic/gin"
)

// resolveAccount maps an email to its user and account, writing the
// error response itself when the lookup fails. It also tags the gin
// context with the acting user for the audit middleware.
func resolveAccount(c *gin.Context, svc *ledger.Service, email string) (*models.User, *models.Account, bool) {
	user, err := svc.UserByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "unknown user")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		}
		return nil, nil, false
	}
	c.Set(middleware.CurrentUserIDKey, user.ID)

	acct, err := svc.AccountForUser(user.ID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup account failed")
		}
		return nil, nil, false
	}
	return user, acct, true
}

type txnResp struct {
	ID          uint      `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"` // display string, e.g. "$5.00"
	Category    string    `json:"category"`
	Approved    bool      `json:"approved"`
	Memo        string    `json:"memo"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTxnResp(t *models.Transaction) txnResp {
	return txnResp{
		ID:          t.ID,
		AmountCents: t.AmountCents,
		Amount:      util.CentsToDollars(t.AmountCents),
		Category:    string(t.Category),
		Approved:    t.Approved,
		Memo:        t.Memo,
		CreatedAt:   t.CreatedAt,
	}
}

func toTxnResps(txns []models.Transaction) []txnResp {
	out := make([]txnResp, 0, len(txns))
	for i := range txns {
		out = append(out, toTxnResp(&txns[i]))
	}
	return out
}
