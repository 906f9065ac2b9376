package schema

// SocialPromptLikeTable represents the 'social.promptlike' table
type SocialPromptLikeTable struct {
	Table     string
	PromptID  string
	UserID    string
	CreatedAt string
}

// SocialPromptLike is the schema definition for social.promptlike
var SocialPromptLike = SocialPromptLikeTable{
	Table:     "social.promptlike",
	PromptID:  "promptid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
