package movie

import "errors"

var (
	// ErrNotFound indicates a movie, genre or director could not be located.
	ErrNotFound = errors.New("movie not found")
	// ErrGenreNotFound indicates no movie carries the requested genre.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrDirectorNotFound indicates no movie was directed by the requested person.
	ErrDirectorNotFound = errors.New("director not found")
)

// Genre describes a movie genre.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Director describes a movie director.
type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Movie captures a catalog entry.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
	Actors      []string `json:"actors"`
	ImagePath   string   `json:"imagePath"`
	Featured    bool     `json:"featured"`
}
