// File: models/product.go
package models

import "time"

// Product is a downloadable resource in the storefront, with bilingual copy.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Slug          string    `json:"slug" db:"slug"`
	TitleAr       string    `json:"title_ar" db:"title_ar"`
	TitleEn       string    `json:"title_en" db:"title_en"`
	DescriptionAr string    `json:"description_ar" db:"description_ar"`
	DescriptionEn string    `json:"description_en" db:"description_en"`
	FileURL       string    `json:"file_url" db:"file_url"`
	CoverURL      string    `json:"cover_url" db:"cover_url"`
	IsFree        bool      `json:"is_free" db:"is_free"`
	PriceCents    int       `json:"price_cents" db:"price_cents"`
	DownloadCount int       `json:"download_count" db:"download_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Title returns the localized title for the given language ("ar" or "en").
func (p Product) Title(lang string) string {
	if lang == "ar" && p.TitleAr != "" {
		return p.TitleAr
	}
	return p.TitleEn
}
