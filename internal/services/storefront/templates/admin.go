package templates

// AdminRow is one record in an admin listing.
type AdminRow struct {
	ID        string
	Title     string
	Detail    string
	EditURL   string
	DeleteURL string
}

// AdminListView is an admin listing page model.
type AdminListView struct {
	Heading string
	AddURL  string
	Rows    []AdminRow
	// ReorderAction enables the sort form when set.
	ReorderAction string
}

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// AdminPageForm is the add/edit page form model.
type AdminPageForm struct {
	Heading string
	Action  string
	Title   string
	Slug    string
	Content string
	Errors  []string
}

// AdminCategoryForm is the add/edit category form model.
type AdminCategoryForm struct {
	Heading string
	Action  string
	Title   string
	Errors  []string
}

// AdminGalleryImage is a gallery image with its delete action.
type AdminGalleryImage struct {
	URL          string
	DeleteAction string
}

// AdminProductForm is the add/edit product form model.
type AdminProductForm struct {
	Heading       string
	Action        string
	Title         string
	Description   string
	Price         string
	Categories    []Option
	ImageURL      string
	Gallery       []AdminGalleryImage
	GalleryAction string
	Errors        []string
}
