package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// AgreementDocument carries everything that ends up on the rendered page.
type AgreementDocument struct {
	ContractID       string
	AgreementAddress string
	OwnerAddress     string
	UserAddress      string
	VehicleID        string
	RentAmount       string
	DepositAmount    string
	StartDate        time.Time
	EndDate          time.Time
	Installments     int
}

// GeneratedFile points at a rendered document on disk. The caller owns the
// file: upload and cleanup are its responsibility.
type GeneratedFile struct {
	Path string
	Size int64
}

// ScheduleEntry is one row of the payment schedule table.
type ScheduleEntry struct {
	DueDate time.Time
	Amount  string
	Status  string
}

// QuarterlySchedule lays out n installments three months apart starting at
// start. The first installment is recorded as paid because agreement creation
// collects it up front; the rest are pending regardless of actual chain state.
func QuarterlySchedule(start time.Time, amount string, n int) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, n)
	for i := 0; i < n; i++ {
		status := "Pending"
		if i == 0 {
			status = "Paid"
		}
		entries = append(entries, ScheduleEntry{
			DueDate: start.AddDate(0, 3*i, 0),
			Amount:  amount,
			Status:  status,
		})
	}
	return entries
}

type Generator struct {
	dir string
}

func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

// GenerateAgreementPDF renders the rental agreement into a PDF under the
// generator's directory and returns its location and byte size.
func (g *Generator) GenerateAgreementPDF(doc AgreementDocument) (*GeneratedFile, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Car Rental Agreement", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract %s", doc.ContractID), "", 1, "C", false, 0, "")
	if doc.AgreementAddress != "" {
		pdf.CellFormat(0, 6, doc.AgreementAddress, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	// parties and terms
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Parties and Terms", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Owner", doc.OwnerAddress},
		{"Renter", doc.UserAddress},
		{"Vehicle", doc.VehicleID},
		{"Rent per installment", doc.RentAmount + " CPT"},
		{"Deposit", doc.DepositAmount + " CPT"},
		{"Start date", doc.StartDate.Format(dateLayout)},
		{"End date", doc.EndDate.Format(dateLayout)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// payment schedule
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Payment Schedule", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(20, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 7, "Due Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 7, "Amount (CPT)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Status", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, entry := range QuarterlySchedule(doc.StartDate, doc.RentAmount, doc.Installments) {
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, entry.DueDate.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, entry.Amount, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, entry.Status, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(10)

	// signature block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "B", 1, "L", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 7, "_______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "_______________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 7, "Owner", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Renter", "", 1, "L", false, 0, "")

	path := filepath.Join(g.dir, fmt.Sprintf("agreement-%s.pdf", uuid.NewString()))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &GeneratedFile{Path: path, Size: info.Size()}, nil
}
