package models

// Contact is a named point of contact belonging to a Company. Email and
// MobileNo may each hold a comma separated list.
type Contact struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CustomerID uint   `json:"customerID" gorm:"not null;index"`
	Name       string `json:"name" gorm:"type:text;not null"`
	Email      string `json:"email" gorm:"type:text"`
	MobileNo   string `json:"mobileNo" gorm:"type:text"`
}

func (m Contact) TableName() string {
	return "company_contacts"
}
