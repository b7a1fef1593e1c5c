package models

import "time"

// Variant represents a color+size instance of a product with its own stock
// count. Variants carry a stable ID assigned at creation; all stock
// operations address variants by that ID, never by list position.
type Variant struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product represents a catalog entry owning its variant list
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand"`
	WholesalePrice int64     `json:"wholesale_price"`
	RetailerPrice  int64     `json:"retailer_price"`
	ImageURL       string    `json:"image_url"`
	Description    string    `json:"description"`
	Variants       []Variant `json:"variants"`
	CreatedAt      time.Time `json:"created_at"`
}

// TotalStock returns the sum of stock across all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// SaleRecord represents a completed transaction. Product and variant
// fields are value snapshots taken at sale time; later catalog edits or
// deletions never affect a recorded sale.
type SaleRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Variant     Variant   `json:"variant"`
	Quantity    int       `json:"quantity"`
	TotalPrice  int64     `json:"total_price"`
	Timestamp   time.Time `json:"timestamp"`
}

// CompanyInfo holds the store identity printed on receipts
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Logo    string `json:"logo,omitempty"`
}

// Settings is the process-wide application configuration, loaded once at
// startup and persisted on every change
type Settings struct {
	AIRecognitionEnabled bool        `json:"ai_recognition_enabled"`
	Currency             string      `json:"currency"`
	Company              CompanyInfo `json:"company"`
}

// Supported currency codes
const (
	CurrencyINR = "INR"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyUSD = "USD"
)

// CurrencySymbol maps a currency code to its display symbol
func CurrencySymbol(currency string) string {
	switch currency {
	case CurrencyINR:
		return "₹"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	default:
		return "$"
	}
}

// Snapshot is a full-state export: catalog, ledger and settings captured
// as one document
type Snapshot struct {
	Catalog    []Product    `json:"catalog"`
	Ledger     []SaleRecord `json:"ledger"`
	Settings   Settings     `json:"settings"`
	ExportedAt time.Time    `json:"exported_at"`
}

// Detection is the recognition gateway's best-guess product descriptor
type Detection struct {
	Color          string  `json:"color"`
	Size           string  `json:"size"`
	WholesalePrice int64   `json:"wholesalePrice"`
	RetailerPrice  int64   `json:"retailerPrice"`
	Brand          string  `json:"brand"`
	Confidence     float64 `json:"confidence"`
	Notes          string  `json:"notes"`
}

// BrandNoneDetected is the gateway's sentinel brand value for frames with
// no recognizable product
const BrandNoneDetected = "None detected"

// MinConfidence is the threshold below which a detection is treated as a
// valid empty result rather than a match
const MinConfidence = 0.2

// IsMatch reports whether the detection is usable as a product suggestion
func (d *Detection) IsMatch() bool {
	return d.Brand != BrandNoneDetected && d.Confidence >= MinConfidence
}
