package templates

// CartLine is one checkout row.
type CartLine struct {
	Title        string
	ImageURL     string
	Quantity     int
	Price        string
	LineTotal    string
	AddAction    string
	RemoveAction string
	ClearAction  string
}

// CartView is the checkout page model.
type CartView struct {
	Lines []CartLine
	Total string
}
