package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reel is the stored document for a short video post. Likes holds the set of
// distinct contributors (user ids, or the "anon" sentinel for untracked likes);
// the count shown to clients is the cardinality of that set.
type Reel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	VideoURL     string             `bson:"video_url"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty"`
	Caption      string             `bson:"caption,omitempty"`
	Hashtags     []string           `bson:"hashtags"`
	Likes        []string           `bson:"likes"`
	Comments     []Comment          `bson:"comments"`
	UserID       string             `bson:"user_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Comment is embedded in its parent reel. Its id is generated independently of
// the reel's id; the comments array is append-only and chronological.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    string             `bson:"user_id,omitempty"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

// CommentRequest is the body for POST /api/reels/:id/comment
type CommentRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text" validate:"required"`
}

// ReelView is the client-facing projection of a reel.
type ReelView struct {
	ID           string        `json:"id"`
	VideoURL     string        `json:"video_url"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	Caption      string        `json:"caption,omitempty"`
	Hashtags     []string      `json:"hashtags"`
	Likes        int           `json:"likes"`
	Comments     []CommentView `json:"comments"`
	UserID       string        `json:"user_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

type CommentView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReelView projects a stored reel into its response shape. The like count
// is the size of the like set, never a raw event count. A missing created_at
// falls back to the current time; well-formed documents always carry one.
func NewReelView(r Reel) ReelView {
	comments := make([]CommentView, 0, len(r.Comments))
	for _, c := range r.Comments {
		comments = append(comments, NewCommentView(c))
	}

	hashtags := r.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return ReelView{
		ID:           r.ID.Hex(),
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		Caption:      r.Caption,
		Hashtags:     hashtags,
		Likes:        len(r.Likes),
		Comments:     comments,
		UserID:       r.UserID,
		CreatedAt:    createdAt,
	}
}

func NewCommentView(c Comment) CommentView {
	return CommentView{
		ID:        c.ID.Hex(),
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

// NewReelViews maps a page of reels, always returning a non-nil slice so the
// list endpoint serializes an empty page as [] rather than null.
func NewReelViews(reels []Reel) []ReelView {
	views := make([]ReelView, 0, len(reels))
	for _, r := range reels {
		views = append(views, NewReelView(r))
	}
	return views
}
