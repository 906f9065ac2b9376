package schema

// CorePromptTable represents the 'core.prompt' table
type CorePromptTable struct {
	Table         string
	ID            string
	Title         string
	Slug          string
	Content       string
	CategorySlugs string
	Language      string
	Models        string
	Tags          string
	AuthorID      string
	LikesCount    string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CorePrompt is the schema definition for core.prompt
var CorePrompt = CorePromptTable{
	Table:         "core.prompt",
	ID:            "id",
	Title:         "title",
	Slug:          "slug",
	Content:       "content",
	CategorySlugs: "categoryslugs",
	Language:      "language",
	Models:        "models",
	Tags:          "tags",
	AuthorID:      "authorid",
	LikesCount:    "likescount",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t CorePromptTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Content, t.CategorySlugs, t.Language,
		t.Models, t.Tags, t.AuthorID, t.LikesCount, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
