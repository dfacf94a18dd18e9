package templates

// ProductCard is one entry of a product listing.
type ProductCard struct {
	Title    string
	URL      string
	ImageURL string
	Price    string
}

// ProductListView is the listing page model.
type ProductListView struct {
	Heading  string
	Products []ProductCard
}

// GalleryImage is one gallery image with its thumbnail.
type GalleryImage struct {
	URL      string
	ThumbURL string
}

// ProductDetailView is the product detail page model.
type ProductDetailView struct {
	Title       string
	Description string
	Price       string
	ImageURL    string
	Gallery     []GalleryImage
	SignedIn    bool
	AddAction   string
}
