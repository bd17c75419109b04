package schema

// SocialComicRatingTable maps social.comicrating, one score per reader and comic.
type SocialComicRatingTable struct {
	Table     string
	UserID    string
	ComicID   string
	Score     string
	CreatedAt string
	UpdatedAt string
}

var SocialComicRating = SocialComicRatingTable{
	Table:     "social.comicrating",
	UserID:    "userid",
	ComicID:   "comicid",
	Score:     "score",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// SocialCommentTable maps social.comment, reader comments, soft deleted through isdeleted.
type SocialCommentTable struct {
	Table     string
	ID        string
	UserID    string
	ComicID   string
	ChapterID string
	Body      string
	IsDeleted string
	CreatedAt string
	UpdatedAt string
}

var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	UserID:    "userid",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	Body:      "body",
	IsDeleted: "isdeleted",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
