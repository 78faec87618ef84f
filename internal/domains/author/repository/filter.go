package repository

import (
	"strings"

	"course-library-backend/internal/domains/author/model"
)

// normalize trims the filter values; matching is case-insensitive.
func normalize(f model.AuthorFilter) model.AuthorFilter {
	return model.AuthorFilter{
		MainCategory: strings.TrimSpace(f.MainCategory),
		SearchQuery:  strings.TrimSpace(f.SearchQuery),
	}
}

func matches(a model.Author, f model.AuthorFilter) bool {
	if f.MainCategory != "" && !strings.EqualFold(a.MainCategory, f.MainCategory) {
		return false
	}
	if f.SearchQuery != "" {
		q := strings.ToLower(f.SearchQuery)
		return strings.Contains(strings.ToLower(a.MainCategory), q) ||
			strings.Contains(strings.ToLower(a.FirstName), q) ||
			strings.Contains(strings.ToLower(a.LastName), q)
	}
	return true
}

// likePattern escapes LIKE wildcards so the query is matched literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
