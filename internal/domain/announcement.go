package domain

import "time"

// Announcement is an admin-posted notice shown to all tenants.
type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	DatePosted time.Time `json:"date_posted"`
}

func (a Announcement) ToDoc() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"title":      a.Title,
		"content":    a.Content,
		"datePosted": timeDoc(a.DatePosted),
	}
}

func AnnouncementFromDoc(m map[string]any) Announcement {
	return Announcement{
		ID:         docString(m, "id"),
		Title:      docString(m, "title"),
		Content:    docString(m, "content"),
		DatePosted: docTime(m, "datePosted"),
	}
}
