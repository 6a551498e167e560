package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vjchen03/hsa/internal/config"
	"github.com/vjchen03/hsa/internal/database"
	"github.com/vjchen03/hsa/internal/models"
	"github.com/vjchen03/hsa/internal/router"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "hsa_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.App.TxnPageSize = 25
	return router.SetupRouter(cfg, db), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/csv; charset=utf-8" {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func data(resp map[string]interface{}) map[string]interface{} {
	d, _ := resp["data"].(map[string]interface{})
	return d
}

func TestRegisterDepositCardPurchaseFlow(t *testing.T) {
	r, db := newTestServer(t)

	// register
	w, resp := doJSON(t, r, http.MethodPost, "/api/register",
		gin.H{"email": "a@x.com", "full_name": "Ada Lovelace"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data(resp)["created"])

	// registering again loads the same user
	w, resp = doJSON(t, r, http.MethodPost, "/api/register",
		gin.H{"email": "a@x.com", "full_name": "Someone Else"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data(resp)["created"])
	assert.Equal(t, "loaded", data(resp)["message"])

	// fresh account shows a zero balance
	w, resp = doJSON(t, r, http.MethodGet, "/api/overview?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	acct := data(resp)["account"].(map[string]interface{})
	assert.Equal(t, "$0.00", acct["balance"])
	assert.Nil(t, data(resp)["card"])

	// deposit $50.00
	w, resp = doJSON(t, r, http.MethodPost, "/api/deposit",
		gin.H{"email": "a@x.com", "amount": "50.00"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5000), data(resp)["balance_cents"])

	// purchase without a card declines and does not debit
	w, resp = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "5.00", "category": "doctor_visit", "memo": "checkup"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data(resp)["approved"])
	assert.Equal(t, "purchase_no", data(resp)["message"])

	// issue the card; PAN and CVV visible only now
	w, resp = doJSON(t, r, http.MethodPost, "/api/cards", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data(resp)["newly_issued"])
	card := data(resp)["card"].(map[string]interface{})
	assert.Len(t, card["pan"], 16)
	assert.Len(t, card["cvv"], 3)

	// second issuance is a no-op with a masked PAN
	w, resp = doJSON(t, r, http.MethodPost, "/api/cards", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data(resp)["newly_issued"])
	card = data(resp)["card"].(map[string]interface{})
	assert.Contains(t, card["pan"], "****")
	assert.NotContains(t, card, "cvv")

	// with the card the same purchase approves and debits
	w, resp = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "5.00", "category": "doctor_visit", "memo": "checkup"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data(resp)["approved"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/overview?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	acct = data(resp)["account"].(map[string]interface{})
	assert.Equal(t, float64(4500), acct["balance_cents"])

	// one row per attempt: deposit + declined + approved
	txns := data(resp)["transactions"].([]interface{})
	assert.Len(t, txns, 3)

	// every mutating call above left an audit row
	var audits int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&audits).Error)
	assert.Equal(t, int64(7), audits)
}

func TestUnknownUserIs404(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/deposit",
		gin.H{"email": "ghost@x.com", "amount": "10.00"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/overview?email=ghost@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/cards", gin.H{"email": "ghost@x.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationErrors(t *testing.T) {
	r, db := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register",
		gin.H{"email": "a@x.com", "full_name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code)

	// malformed and non-positive amounts never reach the ledger
	for _, amount := range []string{"abc", "", "0", "-5"} {
		w, _ = doJSON(t, r, http.MethodPost, "/api/deposit",
			gin.H{"email": "a@x.com", "amount": amount})
		assert.Equal(t, http.StatusBadRequest, w.Code, "amount %q", amount)
	}

	// "deposit" is not a purchasable category
	w, _ = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "1.00", "category": "deposit"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "1.00", "category": "vacation"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad email shape is rejected at registration
	w, _ = doJSON(t, r, http.MethodPost, "/api/register",
		gin.H{"email": "not-an-email", "full_name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var txns int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txns).Error)
	assert.Zero(t, txns, "rejected requests must not write history")
}

func TestExportCSV(t *testing.T) {
	r, _ := newTestServer(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/register",
		gin.H{"email": "a@x.com", "full_name": "Ada"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/deposit",
		gin.H{"email": "a@x.com", "amount": "25.00"})

	w, _ := doJSON(t, r, http.MethodGet, "/api/transactions/export/csv?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	body := w.Body.String()
	assert.Contains(t, body, "Date,Category,Amount,Approved,Memo")
	assert.Contains(t, body, "deposit")
	assert.Contains(t, body, "$25.00")
}

func TestCategoryStats(t *testing.T) {
	r, _ := newTestServer(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/register",
		gin.H{"email": "a@x.com", "full_name": "Ada"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/deposit",
		gin.H{"email": "a@x.com", "amount": "100.00"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/cards", gin.H{"email": "a@x.com"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "30.00", "category": "doctor_visit"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "10.00", "category": "prescription"})
	// declined, must not count as spend
	_, _ = doJSON(t, r, http.MethodPost, "/api/purchases",
		gin.H{"email": "a@x.com", "amount": "10.00", "category": "groceries"})

	w, resp := doJSON(t, r, http.MethodGet, "/api/stats/categories?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(resp)
	assert.Equal(t, "$40.00", d["total_spent"])
	assert.Equal(t, "$100.00", d["total_deposited"])
	assert.Equal(t, "$60.00", d["balance"])

	rows := d["by_category"].([]interface{})
	require.Len(t, rows, 2)
	top := rows[0].(map[string]interface{})
	assert.Equal(t, "doctor_visit", top["category"])
	assert.Equal(t, "$30.00", top["spent"])
}
