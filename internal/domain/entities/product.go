package entities

// ProductID identifies one of the recommended pillows.
type ProductID string

const (
	ProductCube    ProductID = "cube"
	ProductContour ProductID = "contour"
	ProductSlim    ProductID = "slim"
)

// ProductIDs lists every product the quiz can recommend.
var ProductIDs = []ProductID{ProductCube, ProductContour, ProductSlim}

// Product is a read-only catalog entry. The quiz references products by
// pointer and never modifies them.
type Product struct {
	ID          ProductID      `yaml:"id"`          // stable identifier
	Name        string         `yaml:"name"`        // name people recognise on the marketplace
	Tagline     string         `yaml:"tagline"`     // one-line positioning
	Description string         `yaml:"description"` // short description, no medical claims
	PurchaseURL string         `yaml:"purchase_url"`
	Image       string         `yaml:"image,omitempty"`
	Cooling     CoolingVariant `yaml:"cooling"` // optional cooling upsell
}

// CoolingVariant describes the optional cooling version of a product.
type CoolingVariant struct {
	Enabled     bool   `yaml:"enabled"`
	VariantName string `yaml:"variant_name"`
	Details     string `yaml:"details"`
}
