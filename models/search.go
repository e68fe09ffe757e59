package models

import "strings"

// SearchResult is a single hit from the combined user/reel search. Type is
// "user" or "reel"; subtitle is empty when there is nothing to show.
type SearchResult struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// NewUserSearchResult prefers the bio as subtitle and falls back to the email.
func NewUserSearchResult(u User) SearchResult {
	subtitle := u.Bio
	if subtitle == "" {
		subtitle = u.Email
	}
	return SearchResult{
		Type:     "user",
		ID:       u.ID.Hex(),
		Title:    u.Name,
		Subtitle: subtitle,
	}
}

// NewReelSearchResult titles the hit with the trimmed caption, or the literal
// "Reel" when the caption is blank. The subtitle shows up to the first three
// hashtags.
func NewReelSearchResult(r Reel) SearchResult {
	title := strings.TrimSpace(r.Caption)
	if title == "" {
		title = "Reel"
	}

	subtitle := ""
	if len(r.Hashtags) > 0 {
		tags := r.Hashtags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		subtitle = "#" + strings.Join(tags, ", #")
	}

	return SearchResult{
		Type:     "reel",
		ID:       r.ID.Hex(),
		Title:    title,
		Subtitle: subtitle,
	}
}
