package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductImageSlots is the number of image slots a product carries.
const ProductImageSlots = 3

type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(150);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"imageUrl" gorm:"type:varchar(300)"`
	ImageURL2   string          `json:"imageUrl2" gorm:"column:image_url_2;type:varchar(300)"`
	ImageURL3   string          `json:"imageUrl3" gorm:"column:image_url_3;type:varchar(300)"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SetImageURL stores url in the given 1-based slot.
func (p *Product) SetImageURL(slot int, url string) {
	switch slot {
	case 1:
		p.ImageURL = url
	case 2:
		p.ImageURL2 = url
	case 3:
		p.ImageURL3 = url
	}
}

// ImageURLs returns the non-empty image references in slot order.
func (p Product) ImageURLs() []string {
	var urls []string
	for _, u := range []string{p.ImageURL, p.ImageURL2, p.ImageURL3} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

type ProductInput struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	Stock       int    `form:"stock" binding:"min=0"`
}
