package models

// LimingProduct is a liming amendment offered by the consultancy
type LimingProduct struct {
	Base
	Name         string  `gorm:"size:255;not null" json:"name"`
	Manufacturer string  `gorm:"size:255" json:"manufacturer"`
	Form         string  `gorm:"size:64" json:"form"`
	CaOContent   float64 `gorm:"column:cao_content;not null;default:0" json:"caoContent"`
	MgOContent   float64 `gorm:"column:mgo_content;not null;default:0" json:"mgoContent"`
	PricePerTon  float64 `gorm:"not null;default:0" json:"pricePerTon"`
	Description  string  `gorm:"type:text" json:"description"`
	ImageURL     string  `gorm:"size:1024" json:"imageUrl"`
	Active       bool    `gorm:"not null;index" json:"active"`
	SortOrder    int     `gorm:"not null;default:0" json:"sortOrder"`
}

// TableName overrides the table name for LimingProduct
func (LimingProduct) TableName() string {
	return "liming_products"
}

// FertilizationProduct is a fertilizer offered by the consultancy, contents in percent
type FertilizationProduct struct {
	Base
	Name         string  `gorm:"size:255;not null" json:"name"`
	Manufacturer string  `gorm:"size:255" json:"manufacturer"`
	N            float64 `gorm:"column:n_content;not null;default:0" json:"n"`
	P2O5         float64 `gorm:"column:p2o5_content;not null;default:0" json:"p2o5"`
	K2O          float64 `gorm:"column:k2o_content;not null;default:0" json:"k2o"`
	MgO          float64 `gorm:"column:mgo_content;not null;default:0" json:"mgo"`
	S            float64 `gorm:"column:s_content;not null;default:0" json:"s"`
	PricePerTon  float64 `gorm:"not null;default:0" json:"pricePerTon"`
	Description  string  `gorm:"type:text" json:"description"`
	ImageURL     string  `gorm:"size:1024" json:"imageUrl"`
	Active       bool    `gorm:"not null;index" json:"active"`
	SortOrder    int     `gorm:"not null;default:0" json:"sortOrder"`
}

// TableName overrides the table name for FertilizationProduct
func (FertilizationProduct) TableName() string {
	return "fertilization_products"
}

// PortalImage is an image shown on the marketing pages
type PortalImage struct {
	Base
	Title     string `gorm:"size:255" json:"title"`
	URL       string `gorm:"size:1024;not null" json:"url"`
	AltText   string `gorm:"size:255" json:"altText"`
	Section   string `gorm:"size:64;index" json:"section"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
	Active    bool   `gorm:"not null" json:"active"`
}

// TableName overrides the table name for PortalImage
func (PortalImage) TableName() string {
	return "portal_images"
}
