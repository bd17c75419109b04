package schema

// SiteProductTable maps site.product, merchandise shown in the shop.
type SiteProductTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	PriceCents  string
	Currency    string
	ImageURL    string
	PurchaseURL string
	IsActive    string
	SortOrder   string
	CreatedAt   string
	UpdatedAt   string
}

var SiteProduct = SiteProductTable{
	Table:       "site.product",
	ID:          "id",
	Name:        "name",
	Description: "description",
	PriceCents:  "pricecents",
	Currency:    "currency",
	ImageURL:    "imageurl",
	PurchaseURL: "purchaseurl",
	IsActive:    "isactive",
	SortOrder:   "sortorder",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// SiteSectionTable maps site.section, ordered home page sections.
type SiteSectionTable struct {
	Table     string
	ID        string
	Kind      string
	Title     string
	Body      string
	ComicIDs  string
	Position  string
	IsVisible string
	CreatedAt string
	UpdatedAt string
}

var SiteSection = SiteSectionTable{
	Table:     "site.section",
	ID:        "id",
	Kind:      "kind",
	Title:     "title",
	Body:      "body",
	ComicIDs:  "comicids",
	Position:  "position",
	IsVisible: "isvisible",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
