// Package printer implements the print gateway: ESC/POS receipt rendering
// and the paired-device capability interface the receipt is written to.
package printer

import (
	"bytes"
	"fmt"

	"shoetrack/internal/models"
)

// ESC/POS command sequences
var (
	cmdInitialize = []byte{0x1B, 0x40}             // ESC @
	cmdCenter     = []byte{0x1B, 0x61, 0x01}       // ESC a 1
	cmdCut        = []byte{0x1D, 0x56, 0x41, 0x00} // GS V A 0
)

const separator = "--------------------------------\n"

// RenderReceipt produces the raw command stream for one sale: printer
// reset, center alignment, the UTF-8 text body, then a paper cut. The
// line order is fixed: header, bill meta, line item, totals, footer.
func RenderReceipt(sale models.SaleRecord, company models.CompanyInfo, currencySymbol string) []byte {
	unitPrice := sale.TotalPrice
	if sale.Quantity > 0 {
		unitPrice = sale.TotalPrice / int64(sale.Quantity)
	}

	billID := sale.ID
	if len(billID) > 6 {
		billID = billID[len(billID)-6:]
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, "%s\n", company.Name)
	fmt.Fprintf(&body, "%s\n", company.Address)
	fmt.Fprintf(&body, "Tel: %s\n", company.Phone)
	body.WriteString(separator)
	fmt.Fprintf(&body, "Bill: %s  %s\n", billID, sale.Timestamp.Format("02/01/2006"))
	body.WriteString(separator)
	fmt.Fprintf(&body, "%s\n", sale.ProductName)
	fmt.Fprintf(&body, "%s / Sz: %s\n", sale.Variant.Color, sale.Variant.Size)
	fmt.Fprintf(&body, "%d x %s%d = %s%d\n", sale.Quantity, currencySymbol, unitPrice, currencySymbol, sale.TotalPrice)
	body.WriteString(separator)
	fmt.Fprintf(&body, "TOTAL: %s%d\n", currencySymbol, sale.TotalPrice)
	body.WriteString(separator)
	body.WriteString("Thank you for shopping!\n\n\n")

	out := make([]byte, 0, len(cmdInitialize)+len(cmdCenter)+body.Len()+len(cmdCut))
	out = append(out, cmdInitialize...)
	out = append(out, cmdCenter...)
	out = append(out, body.Bytes()...)
	out = append(out, cmdCut...)
	return out
}
