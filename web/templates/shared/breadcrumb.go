package shared

// Breadcrumb represents a navigation trail entry
type Breadcrumb struct {
	Title string
	URL   string
}

// LayoutProps holds what every page passes to the base layout
type LayoutProps struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []Breadcrumb
	// Flash is a one-line notice shown above the page content
	Flash string
}
