package memstore

import (
	"time"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var seedAuthors = []AuthorRecord{
	{uuid.MustParse("d28888e9-2ba9-473a-a40f-e38cb54f9b35"), "Berry", "Griffin Beak Eldritch", date(1650, time.July, 23), "Ships"},
	{uuid.MustParse("da2fd609-d754-4feb-8acd-c4f9ff13ba96"), "Nancy", "Swashbuckler Rye", date(1668, time.May, 21), "Rum"},
	{uuid.MustParse("2902b665-1190-4c70-9915-b9c2d7680450"), "Eli", "Ivory Bones Sweet", date(1701, time.December, 16), "Singing"},
	{uuid.MustParse("102b566b-ba1f-404c-b2df-e2cde39ade09"), "Arnold", "The Unseen Stafford", date(1702, time.March, 6), "Singing"},
	{uuid.MustParse("5b3621c0-7b12-4e80-9c8b-3398cba7ee05"), "Seabury", "Toxic Reyson", date(1690, time.November, 23), "Maps"},
	{uuid.MustParse("2aadd2df-7caf-45ab-9355-7f6332985a87"), "Rutherford", "Fearless Cloven", date(1723, time.April, 5), "General debauchery"},
}

var seedCourses = []CourseRecord{
	{
		ID:       uuid.MustParse("5b1c2b4d-48c7-402a-80c3-cc796ad49c6b"),
		AuthorID: uuid.MustParse("d28888e9-2ba9-473a-a40f-e38cb54f9b35"),
		Title:    "Commandeering a Ship Without Getting Caught",
		Description: "Commandeering a ship in rough waters isn't easy.  Commandeering it without getting caught is even harder.  " +
			"In this course you'll learn how to sail away and avoid those pesky musketeers.",
	},
	{
		ID:          uuid.MustParse("d8663e5e-7494-4f81-8739-6e0de1bea7ee"),
		AuthorID:    uuid.MustParse("d28888e9-2ba9-473a-a40f-e38cb54f9b35"),
		Title:       "Overthrowing Mutiny",
		Description: "In this course, the author provides tips to avoid, or, if needed, overthrow pirate mutiny.",
	},
	{
		ID:       uuid.MustParse("d173e20d-159e-4127-9ce9-b0ac2564ad97"),
		AuthorID: uuid.MustParse("da2fd609-d754-4feb-8acd-c4f9ff13ba96"),
		Title:    "Avoiding Brawls While Drinking as Much Rum as You Desire",
		Description: "Every good pirate loves rum, but it also has a tendency to get you into trouble.  In this course you'll learn how to avoid that.  " +
			"This new exclusive edition includes an additional chapter on how to run fast without falling while drunk.",
	},
	{
		ID:       uuid.MustParse("40ff5488-fdab-45b5-bc3a-14302d59869a"),
		AuthorID: uuid.MustParse("102b566b-ba1f-404c-b2df-e2cde39ade09"),
		Title:    "Singalong Pirate Hits",
		Description: "In this course you'll learn how to sing all-time favourite pirate songs without sounding like you actually know the lyrics " +
			"or how to carry a tune.",
	},
}

// Seed loads the sample authors and courses (same rows as the SQL seed
// migration). Existing rows with the same ids are overwritten.
func (s *Store) Seed() error {
	return s.Update(func(t *Tables) error {
		for _, a := range seedAuthors {
			t.Authors[a.ID] = a
		}
		for _, c := range seedCourses {
			t.Courses[c.ID] = c
		}
		return nil
	})
}
