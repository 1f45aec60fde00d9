package models

// MaterialRef is a read-only catalog record describing one orderable material.
type MaterialRef struct {
	ID                string  `bson:"id" json:"id"`
	ItemName          string  `bson:"itemName" json:"itemName"`
	MaterialName      string  `bson:"materialName,omitempty" json:"materialName,omitempty"`
	Category          string  `bson:"category,omitempty" json:"category,omitempty"`
	Unit              string  `bson:"unit,omitempty" json:"unit,omitempty"`
	AvailableQuantity float64 `bson:"availableQuantity,omitempty" json:"availableQuantity,omitempty"`
}

// DisplayName returns the name shown to users, preferring the item name.
func (m MaterialRef) DisplayName() string {
	if m.ItemName != "" {
		return m.ItemName
	}
	return m.MaterialName
}

// Site is a known construction site a request can be raised for.
type Site struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}
