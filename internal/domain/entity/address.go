package entity

// Address is a shipping address snapshot. Orders freeze a copy of it so later
// profile edits never rewrite history.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// BillingInfo carries the fiscal data needed to issue an invoice.
type BillingInfo struct {
	RFC           string  `json:"rfc"`
	RazonSocial   string  `json:"razonSocial"`
	CFDIUse       string  `json:"cfdiUse"`
	FiscalAddress Address `json:"fiscalAddress"`
	Email         string  `json:"email"`
}
