// Package entitlement decides which chapters of a project a reader may see.
// The first chapter is always free; the rest require a purchase.
package entitlement

import (
	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
)

// ChapterView is a chapter as presented to a particular reader.
type ChapterView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Locked  bool   `json:"locked"`
}

// HasAccess reports whether user owns project. A nil user owns nothing.
func HasAccess(project catalogdomain.Project, user *authdomain.User) bool {
	return user.HasPurchased(project.ID)
}

// VisibleChapters returns a copy of the project's chapters with every locked
// chapter's content replaced by the placeholder.
func VisibleChapters(project catalogdomain.Project, user *authdomain.User) []catalogdomain.Chapter {
	views := Views(project, user)
	out := make([]catalogdomain.Chapter, len(views))
	for i, v := range views {
		out[i] = catalogdomain.Chapter{ID: v.ID, Title: v.Title, Content: v.Content}
	}
	return out
}

// Views is VisibleChapters with a lock flag per chapter.
func Views(project catalogdomain.Project, user *authdomain.User) []ChapterView {
	owned := HasAccess(project, user)

	out := make([]ChapterView, len(project.Chapters))
	for i, ch := range project.Chapters {
		locked := i > 0 && !owned
		content := ch.Content
		if locked {
			content = catalogdomain.LockedPlaceholder
		}
		out[i] = ChapterView{ID: ch.ID, Title: ch.Title, Content: content, Locked: locked}
	}
	return out
}
