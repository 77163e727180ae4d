package model

// Prompt is the user-owned record: a titled block of prompt text with tags
// and an optional image URL. OwnerID is set once at creation and is the sole
// query key for listing; CreatedAt is Unix milliseconds and never changes
// after the first insert.
type Prompt struct {
	ID        string   `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID   string   `bson:"owner_id" json:"owner_id"`
	Title     string   `bson:"title" json:"title" binding:"required"`
	Content   string   `bson:"content" json:"content" binding:"required"`
	Tags      []string `bson:"tags" json:"tags"`
	ImageURL  string   `bson:"image_url" json:"image_url"`
	CreatedAt int64    `bson:"created_at" json:"created_at"`
}
