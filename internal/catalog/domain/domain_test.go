package domain

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftValidate(t *testing.T) {
	valid := Draft{Title: "T", Description: "D", Category: "cat-1"}
	assert.NoError(t, valid.Validate())

	cases := map[string]Draft{
		"title":       {Description: "D", Category: "cat-1"},
		"description": {Title: "T", Description: "  ", Category: "cat-1"},
		"category":    {Title: "T", Description: "D"},
	}
	for field, d := range cases {
		err := d.Validate()
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), field)
		assert.Equal(t, field, vErr.Field)
	}
}

func TestProjectClone(t *testing.T) {
	p := Project{ID: "p", Chapters: []Chapter{{ID: "c1", Content: "x"}}}
	c := p.Clone()
	c.Chapters[0].Content = "changed"
	assert.Equal(t, "x", p.Chapters[0].Content)
}

func TestNewPublicID(t *testing.T) {
	id, err := NewPublicID("project")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^project-[a-z0-9]{13}$`), id)

	other, err := NewPublicID("project")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestSeedIsIndependent(t *testing.T) {
	a := SeedProjects()
	a[0].Title = "mutated"
	a[0].Chapters[0].Content = "mutated"

	b := SeedProjects()
	assert.Equal(t, "Database Management Systems", b[0].Title)
	assert.NotEqual(t, "mutated", b[0].Chapters[0].Content)
	assert.Len(t, SeedCategories(), 6)
}
