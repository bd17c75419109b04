package schema

// CoreAuthorTable maps core.author, credited creators.
type CoreAuthorTable struct {
	Table     string
	ID        string
	Name      string
	NameAlt   string
	Bio       string
	ImageURL  string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

var CoreAuthor = CoreAuthorTable{
	Table:     "core.author",
	ID:        "id",
	Name:      "name",
	NameAlt:   "namealt",
	Bio:       "bio",
	ImageURL:  "imageurl",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// CoreChapterTable maps core.chapter, chapters of a comic.
// imguralbumurl is set only while pagesource is imgur.
type CoreChapterTable struct {
	Table         string
	ID            string
	ComicID       string
	Number        string
	Title         string
	ImgurAlbumURL string
	PageSource    string
	ViewCount     string
	PublishedAt   string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

var CoreChapter = CoreChapterTable{
	Table:         "core.chapter",
	ID:            "id",
	ComicID:       "comicid",
	Number:        "chapternumber",
	Title:         "title",
	ImgurAlbumURL: "imguralbumurl",
	PageSource:    "pagesource",
	ViewCount:     "viewcount",
	PublishedAt:   "publishedat",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

// CoreComicTable maps core.comic, published series.
// searchvector is generated from title and synopsis.
type CoreComicTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Synopsis     string
	CoverURL     string
	Status       string
	AuthorID     string
	Genres       string
	ViewCount    string
	RatingAvg    string
	RatingCount  string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
	SearchVector string
}

var CoreComic = CoreComicTable{
	Table:        "core.comic",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Synopsis:     "synopsis",
	CoverURL:     "coverurl",
	Status:       "status",
	AuthorID:     "authorid",
	Genres:       "genres",
	ViewCount:    "viewcount",
	RatingAvg:    "ratingavg",
	RatingCount:  "ratingcount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
	SearchVector: "searchvector",
}

// CorePageTable maps core.page, ordered page images of a
// chapter, unique per (chapterid, pagenumber).
type CorePageTable struct {
	Table      string
	ID         string
	ChapterID  string
	PageNumber string
	ImageURL   string
	CreatedAt  string
}

var CorePage = CorePageTable{
	Table:      "core.page",
	ID:         "id",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	ImageURL:   "imageurl",
	CreatedAt:  "createdat",
}
