package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// ReceiptService renders PDF copies of bills for email and download. The
// thermal print path lives in PrinterService; this one exists for customers
// who want a digital copy.
type ReceiptService struct {
	printerService *PrinterService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(printerService *PrinterService) *ReceiptService {
	return &ReceiptService{printerService: printerService}
}

// GeneratePDF renders a sale as an A4 PDF bill with a QR code carrying the
// bill number for quick lookup at the counter
func (s *ReceiptService) GeneratePDF(ctx context.Context, sale *entity.Sale) ([]byte, error) {
	receipt, err := s.printerService.BuildReceipt(ctx, sale)
	if err != nil {
		return nil, err
	}

	qrPNG, err := qrcode.Encode(fmt.Sprintf("BILL|%s|%s", receipt.BillNo, receipt.Date), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Store header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, receipt.Header.StoreName)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	if receipt.Header.Address != "" {
		pdf.Cell(0, 6, receipt.Header.Address)
		pdf.Ln(5)
	}
	if receipt.Header.Phone != "" {
		pdf.Cell(0, 6, receipt.Header.Phone)
		pdf.Ln(5)
	}
	if receipt.Header.TaxID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Tax ID: %s", receipt.Header.TaxID))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Bill info
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Bill No: %s", receipt.BillNo))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", receipt.Date))
	pdf.Ln(6)
	if receipt.Customer != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Customer: %s (%s)", receipt.Customer, receipt.CustomerNo))
		pdf.Ln(6)
	}
	if receipt.Payment != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Payment: %s", receipt.Payment))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Item table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, item := range receipt.Items {
		pdf.CellFormat(90, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(4)

	// Totals
	writeTotal := func(label string, value float64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 11)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(145, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", value), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	writeTotal("Subtotal", receipt.SubTotal, false)
	writeTotal("GST", receipt.Tax, false)
	if receipt.BagFee > 0 {
		writeTotal("Carry Bag", receipt.BagFee, false)
	}
	if receipt.Discount > 0 {
		writeTotal("Discount", -receipt.Discount, false)
	}
	writeTotal("Grand Total", receipt.Total, true)

	// QR code for counter lookup
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 15, 35, 35, false, imageOpts, 0, "")

	if receipt.Footer != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 7, receipt.Footer)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
