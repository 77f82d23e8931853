package movie

// SeedCatalog returns the starter catalog loaded into empty stores.
func SeedCatalog() []*Movie {
	return []*Movie{
		{
			Title:       "Gladiator",
			Description: "A betrayed Roman general fights his way back to Rome as a gladiator.",
			Genre:       Genre{Name: "Action", Description: "Fast-paced films built around physical conflict."},
			Director:    Director{Name: "Ridley Scott", Bio: "English director known for epic and science-fiction films."},
			Actors:      []string{"Russell Crowe", "Joaquin Phoenix", "Connie Nielsen"},
			ImagePath:   "gladiator.png",
			Featured:    true,
		},
		{
			Title:       "Dune: Part Two",
			Description: "Paul Atreides unites with the Fremen while seeking revenge against the conspirators who destroyed his family.",
			Genre:       Genre{Name: "Sci-Fi", Description: "Speculative stories grounded in science and technology."},
			Director:    Director{Name: "Denis Villeneuve", Bio: "Canadian filmmaker known for large-scale science fiction."},
			Actors:      []string{"Timothée Chalamet", "Zendaya", "Rebecca Ferguson"},
			ImagePath:   "dune-part-two.png",
			Featured:    true,
		},
		{
			Title:       "Pulp Fiction",
			Description: "Interlocking stories of Los Angeles criminals told out of order.",
			Genre:       Genre{Name: "Crime", Description: "Stories centred on criminals and the people who chase them."},
			Director:    Director{Name: "Quentin Tarantino", Bio: "American filmmaker known for nonlinear storytelling."},
			Actors:      []string{"John Travolta", "Uma Thurman", "Samuel L. Jackson"},
			ImagePath:   "pulp-fiction.png",
			Featured:    false,
		},
	}
}
