package models

// Setting is one entry of the flat site-wide key-value store injected
// into every rendered page.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}
