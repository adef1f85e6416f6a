package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/utils/format"
	"github.com/go-pdf/fpdf"
)

type ReceiptService struct {
	storeName string
	loc       *time.Location
}

func NewReceiptService(storeName string, loc *time.Location) *ReceiptService {
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptService{storeName: storeName, loc: loc}
}

func ReceiptFilename(orderID string) string {
	return fmt.Sprintf("receipt-%s.pdf", orderID)
}

// Render builds the whole receipt in memory so nothing reaches the client if it fails.
func (s *ReceiptService) Render(order *models.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s receipt %s", s.storeName, order.ID), true)
	pdf.SetCreator(s.storeName, true)
	pdf.SetCreationDate(order.CreatedAt)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr("Order Receipt"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	customer, email := GuestCustomerName, ""
	if order.User != nil {
		customer, email = order.User.FullName, order.User.Email
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr("Order ID: "+order.ID), "", 1, "L", false, 0, "")
	if email != "" {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Customer: %s (%s)", customer, email)), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 7, tr("Customer: "+customer), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, "Date: "+order.CreatedAt.In(s.loc).Format("Jan 2, 2006 3:04 PM"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Items:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	for i, item := range order.Items {
		line := fmt.Sprintf("%d. %s x %d = %s", i+1, item.Name, item.Quantity, format.Money(item.LineTotal()))
		pdf.MultiCell(0, 7, tr(line), "", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Total: "+format.Money(order.TotalAmount), "", 1, "R", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt for order %s: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}
