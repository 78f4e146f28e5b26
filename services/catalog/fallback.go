package catalog

import "vortex/models"

// fallbackTitles is the bundled static dataset served whenever the listing
// API yields no usable data, so a rendered catalog is never empty.
var fallbackTitles = []models.Title{
	{
		ID:        "tt5433140",
		Name:      "Fast X",
		Kind:      models.KindMovie,
		Genre:     "action",
		Rating:    8.5,
		Year:      2023,
		Overview:  "Dom Toretto faces the vengeful son of a drug kingpin he crossed a decade ago.",
		PosterURL: "https://image.tmdb.org/t/p/w500/fiVW06jE7z9YnO4trhaMEdclSiC.jpg",
		IMDBID:    "tt5433140",
		TMDBID:    385687,
	},
	{
		ID:        "tt0133093",
		Name:      "The Matrix",
		Kind:      models.KindMovie,
		Genre:     "action",
		Rating:    8.7,
		Year:      1999,
		Overview:  "A hacker learns the world he lives in is a simulation and joins the fight to free humanity.",
		PosterURL: "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
		IMDBID:    "tt0133093",
		TMDBID:    603,
	},
	{
		ID:        "tt1375666",
		Name:      "Inception",
		Kind:      models.KindMovie,
		Genre:     "sci-fi",
		Rating:    8.8,
		Year:      2010,
		Overview:  "A thief who steals secrets through dream-sharing is offered a chance to erase his past.",
		PosterURL: "https://image.tmdb.org/t/p/w500/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
		IMDBID:    "tt1375666",
		TMDBID:    27205,
	},
	{
		ID:        "tt0111161",
		Name:      "The Shawshank Redemption",
		Kind:      models.KindMovie,
		Genre:     "drama",
		Rating:    9.3,
		Year:      1994,
		Overview:  "Two imprisoned men bond over a number of years, finding solace and eventual redemption.",
		PosterURL: "https://image.tmdb.org/t/p/w500/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
		IMDBID:    "tt0111161",
		TMDBID:    278,
	},
	{
		ID:        "tt0468569",
		Name:      "The Dark Knight",
		Kind:      models.KindMovie,
		Genre:     "action",
		Rating:    9.0,
		Year:      2008,
		Overview:  "Batman faces the Joker, a criminal mastermind who plunges Gotham into anarchy.",
		PosterURL: "https://image.tmdb.org/t/p/w500/qJ2tW6WMYuyKdhLsvDCqqMo8WcI.jpg",
		IMDBID:    "tt0468569",
		TMDBID:    155,
	},
	{
		ID:        "tt0903747",
		Name:      "Breaking Bad",
		Kind:      models.KindSeries,
		Genre:     "drama",
		Rating:    9.5,
		Year:      2008,
		Overview:  "A chemistry teacher diagnosed with cancer turns to manufacturing methamphetamine.",
		PosterURL: "https://image.tmdb.org/t/p/w500/ggFHVNu6YYI5L9pCfOacjizRGt.jpg",
		IMDBID:    "tt0903747",
		TMDBID:    1396,
	},
	{
		ID:        "tt0944947",
		Name:      "Game of Thrones",
		Kind:      models.KindSeries,
		Genre:     "fantasy",
		Rating:    9.2,
		Year:      2011,
		Overview:  "Noble families fight for control of the Iron Throne of Westeros.",
		PosterURL: "https://image.tmdb.org/t/p/w500/1XS1oqL89opfnbLl8WnZY1O1uJx.jpg",
		IMDBID:    "tt0944947",
		TMDBID:    1399,
	},
	{
		ID:        "tt4574334",
		Name:      "Stranger Things",
		Kind:      models.KindSeries,
		Genre:     "sci-fi",
		Rating:    8.7,
		Year:      2016,
		Overview:  "A young boy vanishes and a small town uncovers a mystery involving secret experiments.",
		PosterURL: "https://image.tmdb.org/t/p/w500/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
		IMDBID:    "tt4574334",
		TMDBID:    66732,
	},
	{
		ID:        "tt7366338",
		Name:      "Chernobyl",
		Kind:      models.KindSeries,
		Genre:     "drama",
		Rating:    9.4,
		Year:      2019,
		Overview:  "The story of the 1986 nuclear disaster and the sacrifices made to contain it.",
		PosterURL: "https://image.tmdb.org/t/p/w500/hlLXt2tOPT6RRnjiUmoxyG1LTFi.jpg",
		IMDBID:    "tt7366338",
		TMDBID:    87108,
	},
	{
		ID:        "tt2442560",
		Name:      "Peaky Blinders",
		Kind:      models.KindSeries,
		Genre:     "crime",
		Rating:    8.8,
		Year:      2013,
		Overview:  "A gangster family epic set in 1900s England, centering on a gang who sew razor blades in their caps.",
		PosterURL: "https://image.tmdb.org/t/p/w500/vUUqzWa2LnHIVqkaKVlVGkVcZIW.jpg",
		IMDBID:    "tt2442560",
		TMDBID:    60574,
	},
}

// FallbackTitles returns a copy of the bundled dataset, optionally narrowed
// to one kind.
func FallbackTitles(kind models.Kind, all bool) []models.Title {
	out := make([]models.Title, 0, len(fallbackTitles))
	for _, t := range fallbackTitles {
		if all || t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}
