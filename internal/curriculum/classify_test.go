package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKnownCategories(t *testing.T) {
	cases := map[string]Category{
		"Python Programming":              CategoryProgramming,
		"UX Design Fundamentals":          CategoryDesign,
		"Marketing for Startups":          CategoryBusiness,
		"Machine Learning for Beginners":  CategoryDataScience,
		"Intro to Statistics":             CategoryDataScience,
		"Medieval History":                CategoryOther,
		"WEB ACCESSIBILITY":               CategoryProgramming,
	}
	for topic, want := range cases {
		assert.Equal(t, want, Classify(topic), "topic %q", topic)
	}
}

func TestClassifyOrderPrecedence(t *testing.T) {
	// A topic matching both the Programming and Design groups resolves to
	// whichever group is checked first.
	got := Classify("Web Design Bootcamp")
	assert.Equal(t, CategoryProgramming, got)
}

func TestClassifyIsTotal(t *testing.T) {
	valid := map[Category]bool{
		CategoryProgramming: true,
		CategoryDesign:      true,
		CategoryBusiness:    true,
		CategoryDataScience: true,
		CategoryOther:       true,
	}
	for _, topic := range []string{"", "   ", "quantum knitting", "日本語", "design"} {
		assert.True(t, valid[Classify(topic)], "topic %q", topic)
	}
}

func TestClassifyWithFixtureTable(t *testing.T) {
	table := KeywordTable{
		{Category: CategoryBusiness, Keywords: []string{"zebra"}},
	}
	assert.Equal(t, CategoryBusiness, ClassifyWith(table, "Zebra Breeding"))
	assert.Equal(t, CategoryOther, ClassifyWith(table, "Python Programming"))
}
