package pages

// Post is a static blog entry.
type Post struct {
	Title      string
	Published  string
	Paragraphs []string
}

// Posts are rendered on the blog page, newest first.
var Posts = []Post{
	{
		Title:     "My Favorite Aspects of Vue",
		Published: "May 27th, 2023",
		Paragraphs: []string{
			"Single-file components keep the template, the logic and the styles of a piece of UI side by side.",
			"Reactivity is explicit: a component re-renders when the data it reads changes, and nothing else.",
		},
	},
	{
		Title:     "How to Use Components to Build Complex Web Applications",
		Published: "May 20th, 2023",
		Paragraphs: []string{
			"Split a page into components that either own state or only render what they are given.",
			"Data flows down as properties and user actions flow up as events; only the owning component talks to the API.",
		},
	},
	{
		Title:     "Unit Testing a Pinia Data Store",
		Published: "May 13th, 2023",
		Paragraphs: []string{
			"A store with state, getters and actions is easiest to test directly: create a fresh store per test and call its actions.",
			"Components using the store are tested with a spy store so the test can assert which actions were called and with what arguments.",
		},
	},
}
