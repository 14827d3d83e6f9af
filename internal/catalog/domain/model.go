package domain

import "time"

// LockedPlaceholder replaces the content of a chapter the reader is not entitled to.
const LockedPlaceholder = "This is a locked chapter. Purchase to view."

// Chapter is one ordered section of a project document.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Project is a publishable academic document. Price is in whole naira.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Chapters    []Chapter `json:"chapters"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no chapter storage with p.
func (p Project) Clone() Project {
	out := p
	if p.Chapters != nil {
		out.Chapters = make([]Chapter, len(p.Chapters))
		copy(out.Chapters, p.Chapters)
	}
	return out
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Draft carries the admin-editable fields of a project.
type Draft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Chapters    []Chapter `json:"chapters"`
}
