package models

import "github.com/lib/pq"

// CardImage holds every uploaded card image URL of a Company in a single
// row. The row is only written when at least one upload happened.
type CardImage struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CustomerID uint           `json:"customerID" gorm:"not null;index"`
	ImageURL   pq.StringArray `json:"imageURL" gorm:"type:text[]"`
}

func (m CardImage) TableName() string {
	return "company_card_images"
}
