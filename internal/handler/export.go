package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/models"
	"github.com/vjchen03/hsa/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports an account's full transaction history.
type ExportHandler struct {
	Svc *ledger.Service
	DB  *gorm.DB
}

func NewExportHandler(svc *ledger.Service, db *gorm.DB) *ExportHandler {
	return &ExportHandler{Svc: svc, DB: db}
}

var exportHeaders = []string{"Date", "Category", "Amount", "Approved", "Memo"}

func exportRow(t *models.Transaction) []string {
	return []string{
		t.CreatedAt.Format("2006-01-02 15:04:05"),
		string(t.Category),
		util.CentsToDollars(t.AmountCents),
		strconv.FormatBool(t.Approved),
		t.Memo,
	}
}

// history loads every transaction for the email's account, newest
// first, writing the error response itself on failure.
func (h *ExportHandler) history(c *gin.Context) ([]models.Transaction, bool) {
	email := c.Query("email")
	if email == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email is required")
		return nil, false
	}

	_, acct, ok := resolveAccount(c, h.Svc, email)
	if !ok {
		return nil, false
	}

	var txns []models.Transaction
	if err := h.DB.Where("account_id = ?", acct.ID).
		Order("created_at DESC, id DESC").
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return nil, false
	}
	return txns, true
}

// ExportCSV streams the history as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	txns, ok := h.history(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range txns {
		writer.Write(exportRow(&txns[i]))
	}
}

// ExportXLSX writes the history as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	txns, ok := h.history(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for idx := range txns {
		row := idx + 2
		for col, val := range exportRow(&txns[idx]) {
			f.SetCellValue(sheetName, fmt.Sprintf("%c%d", 'A'+col, row), val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
