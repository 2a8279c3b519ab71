package models

// ItemType identifies a kind of purchasable cosmetic
type ItemType string

const (
	ItemTypeBackground ItemType = "background"
	ItemTypeLayout     ItemType = "layout"
	ItemTypeDecoration ItemType = "decoration"
)

// CatalogItem holds the fields shared by every purchasable cosmetic
type CatalogItem struct {
	ID          string `json:"id" db:"id" validate:"required"`
	Name        string `json:"name" db:"name" validate:"required"`
	Cakes       int64  `json:"cakes" db:"cakes" validate:"gte=0"`
	Filename    string `json:"filename" db:"filename" validate:"required"`
	Description string `json:"description" db:"description"`
	Author      string `json:"author" db:"author"`
	Inactive    bool   `json:"inactive" db:"inactive"`
}

// Background is a profile background
type Background struct {
	CatalogItem
}

// Layout is a profile layout
type Layout struct {
	CatalogItem
	DarkText bool `json:"darkText" db:"dark_text"`
}

// AvatarDecoration is an avatar frame or mask
type AvatarDecoration struct {
	CatalogItem
	IsMask bool `json:"isMask" db:"is_mask"`
}

// Purchasable is the resolved target of a store purchase
type Purchasable struct {
	Item CatalogItem
	Type ItemType
}

// Validate checks the catalog item fields
func (c *CatalogItem) Validate() error {
	return validate.Struct(c)
}
