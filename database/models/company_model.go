package models

import (
	"time"

	"github.com/lib/pq"
)

// Company is one customer intake submission. Immutable after creation -
// there are no update or delete routes.
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	CompanyName       string         `json:"companyName" gorm:"type:text;not null"`
	Address           string         `json:"address" gorm:"type:text;not null"`
	Requirements      pq.StringArray `json:"requirements" gorm:"type:text[]"`
	OtherRequirements string         `json:"otherRequirements" gorm:"type:text"`
	Remarks           string         `json:"remarks" gorm:"type:text"`
	Urgent            bool           `json:"urgent" gorm:"not null;default:false"`

	Contacts  []Contact  `json:"contacts" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE;"`
	CardImage *CardImage `json:"cardImage" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE;"`
}

func (m Company) TableName() string {
	return "customer_details"
}
