package service

import (
	"context"
	"fmt"
	"log"

	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/printer"
	"github.com/minimart/pos-api/pkg/sequence"
)

// PrinterService handles receipt formatting and thermal printing
type PrinterService struct {
	printer      printer.Printer
	settingsRepo repository.SettingsRepository
	printerType  string
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	settingsRepo repository.SettingsRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		settingsRepo: settingsRepo,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer. Returns the receipt data so
// the handler can return it as JSON when the printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "+91 00000 00000",
		},
		BillNo: "000",
		Date:   "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		Tax:      3.60,
		Total:    23.60,
		Footer:   "Test complete",
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// BuildReceipt composes a printable receipt from a recorded sale and the
// store settings
func (s *PrinterService) BuildReceipt(ctx context.Context, sale *entity.Sale) (*entity.Receipt, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.StoreName,
			Address:   settings.Address,
			Phone:     settings.Phone,
			TaxID:     settings.TaxID,
		},
		BillNo:     sequence.FormatBillNo(sale.BillNo),
		Date:       sale.BillDate.Format("2006-01-02 15:04"),
		Customer:   sale.CustomerName,
		CustomerNo: sale.CustomerNo,
		Payment:    sale.PaymentMethod.String(),
		SubTotal:   float64(sale.SubTotal) / 100,
		Tax:        float64(sale.Tax) / 100,
		BagFee:     float64(sale.BagFee) / 100,
		Discount:   float64(sale.Discount) / 100,
		Total:      float64(sale.GrandTotal) / 100,
		Footer:     settings.ReceiptFooter,
	}

	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.LineTotal) / 100,
		})
	}

	return receipt, nil
}

// PrintSaleReceipt fetches a sale and prints its receipt
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, sale *entity.Sale) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, sale)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (bill %s): %v", receipt.BillNo, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.Init().
		SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Bill info
	doc.KeyValue("Bill No:", r.BillNo).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.CustomerNo != "" {
		doc.KeyValue("Cust No:", r.CustomerNo)
	}
	if r.Payment != "" {
		doc.KeyValue("Payment:", r.Payment)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Tax > 0 {
		doc.KeyValue("GST:", fmt.Sprintf("%.2f", r.Tax))
	}
	if r.BagFee > 0 {
		doc.KeyValue("Bag:", fmt.Sprintf("%.2f", r.BagFee))
	}
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			Text(r.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
