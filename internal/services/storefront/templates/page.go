package templates

// ContentPageView is a static content page model.
type ContentPageView struct {
	Title string
	// Content is admin-authored HTML and is written unescaped.
	Content string
}
