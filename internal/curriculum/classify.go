package curriculum

import "strings"

// Category is the closed set of course categories plus the "Other" fallthrough.
type Category string

const (
	CategoryProgramming Category = "Programming"
	CategoryDesign      Category = "Design"
	CategoryBusiness    Category = "Business"
	CategoryDataScience Category = "Data Science"
	CategoryOther       Category = "Other"
)

// KeywordGroup binds a category to the substrings that select it.
type KeywordGroup struct {
	Category Category
	Keywords []string
}

// KeywordTable is an ordered list of keyword groups. Order is part of the
// contract: the first group with a matching keyword wins.
type KeywordTable []KeywordGroup

// DefaultKeywordTable drives Classify. Checked in declaration order.
var DefaultKeywordTable = KeywordTable{
	{
		Category: CategoryProgramming,
		Keywords: []string{"programming", "coding", "software", "developer", "javascript", "python", "golang", "web"},
	},
	{
		Category: CategoryDesign,
		Keywords: []string{"design", "ui", "ux", "graphic", "figma", "illustration"},
	},
	{
		Category: CategoryBusiness,
		Keywords: []string{"business", "marketing", "finance", "entrepreneur", "management", "sales"},
	},
	{
		Category: CategoryDataScience,
		Keywords: []string{"data", "machine learning", "analytics", "statistics", "ai"},
	},
}

// Classify maps a free-text topic onto a category using the default table.
func Classify(topic string) Category {
	return ClassifyWith(DefaultKeywordTable, topic)
}

// ClassifyWith performs case-insensitive substring matching against the given
// table. It is total: topics matching no group classify as Other.
func ClassifyWith(table KeywordTable, topic string) Category {
	lowered := strings.ToLower(topic)
	for _, group := range table {
		for _, kw := range group.Keywords {
			if strings.Contains(lowered, kw) {
				return group.Category
			}
		}
	}
	return CategoryOther
}
