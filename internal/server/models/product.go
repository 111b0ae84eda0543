// Package models defines the records kept by the document store and the
// partial-update shapes accepted for them.
package models

// Product is a marketplace listing owned by a customer (vendor).
// ImageKey is set when the picture lives in object storage; ImageURL then
// points at the server's redirect endpoint instead of carrying the data.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ShopName    string  `json:"shopName"`
	ImageURL    string  `json:"imageUrl"`
	ImageKey    string  `json:"-"`
	OwnerID     string  `json:"ownerId"`
}

// ProductPatch carries the fields of a partial update; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	ShopName    *string
	ImageURL    *string
	ImageKey    *string
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil &&
		p.ShopName == nil && p.ImageURL == nil && p.ImageKey == nil
}
