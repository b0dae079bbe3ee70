package model

// PostStatus mirrors the Blogger post lifecycle states.
type PostStatus string

const (
	PostStatusDraft PostStatus = "DRAFT"
	PostStatusLive  PostStatus = "LIVE"
)

// BlogPost is a post ready to be submitted to a blog.
type BlogPost struct {
	Title   string
	Content string // Rendered HTML.
	Draft   bool
}

// PublishedPost is the blog platform's view of an inserted post.
type PublishedPost struct {
	ID     string
	URL    string
	Status PostStatus
}
