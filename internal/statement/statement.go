// Package statement renders an account statement (the account snapshot
// plus its most recent ledger entries) as PDF or CSV.
package statement

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/validate"
)

// Statement is everything a rendered statement contains.
type Statement struct {
	BankName       string
	CurrencySymbol string
	Snapshot       model.Snapshot
	Entries        []ledger.Entry
}

// WritePDF renders the statement as a PDF document.
func (s Statement) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(s.BankName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Account Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}
	line("Account Number", fmt.Sprintf("%d", s.Snapshot.AccountNumber))
	line("Name", s.Snapshot.FirstName)
	line("Type", string(s.Snapshot.Type))
	line("Date of Birth", s.Snapshot.DateOfBirth.Format(validate.DOBLayout))
	line("Age", fmt.Sprintf("%d", s.Snapshot.Age))
	if s.Snapshot.Minor() && s.Snapshot.Guardian != nil {
		line("Guardian", fmt.Sprintf("%s (%s)", s.Snapshot.Guardian.Name, s.Snapshot.Guardian.Relation))
	}
	line("Balance", s.CurrencySymbol+s.Snapshot.Balance.StringFixed(2))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Recent Transactions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(s.Entries) == 0 {
		pdf.CellFormat(0, 6, "No transactions yet.", "", 1, "L", false, 0, "")
	}
	for _, e := range s.Entries {
		pdf.CellFormat(40, 6, e.Time.Format(ledger.TimeLayout), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(e.Text), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
