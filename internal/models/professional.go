package models

import "time"

// Credit is a single film/TV credit imported from TMDB.
type Credit struct {
	ID         int    `bson:"id"          json:"id"`
	Title      string `bson:"title"       json:"title"`
	Type       string `bson:"type"        json:"type"` // movie or tv
	Year       string `bson:"year"        json:"year"`
	Role       string `bson:"role"        json:"role"`
	PosterPath string `bson:"poster_path" json:"posterPath,omitempty"`
}

type Professional struct {
	ID                    string    `bson:"_id,omitempty"  json:"id"`
	Name                  string    `bson:"name"           json:"name" validate:"required"`
	Department            string    `bson:"department"     json:"department" validate:"required"`
	IMDBLink              string    `bson:"imdb_link,omitempty" json:"imdbLink,omitempty"`
	PhotoURL              string    `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	AverageRating         float64   `bson:"average_rating" json:"averageRating"`
	TotalReviews          int       `bson:"total_reviews"  json:"totalReviews"`
	VerifiedIMDB          bool      `bson:"verified_imdb"  json:"verifiedImdb"`
	ReviewsDisabled       bool      `bson:"reviews_disabled" json:"reviewsDisabled"`
	ReviewsDisabledReason string    `bson:"reviews_disabled_reason,omitempty" json:"reviewsDisabledReason,omitempty"`
	TMDBID                int       `bson:"tmdb_id,omitempty" json:"tmdbId,omitempty"`
	Credits               []Credit  `bson:"credits,omitempty" json:"credits,omitempty"`
	AddedBy               string    `bson:"added_by"       json:"addedBy"`
	CreatedAt             time.Time `bson:"created_at"     json:"createdAt"`
}

// Departments is the catalog of accepted professional departments. The list is
// open-ended; "Other" is always a valid choice.
var Departments = []string{
	"Actor", "Director", "Producer", "Executive Producer",
	"Cinematographer", "Writer", "Editor", "Composer",
	"Production Designer", "Costume Designer", "Make-up Artist",
	"Hair Stylist", "Sound Engineer", "Sound Designer", "VFX Artist",
	"Stunt Coordinator", "Casting Director", "Line Producer",
	"Unit Production Manager", "First Assistant Director",
	"Second Assistant Director", "Grip", "Gaffer", "Best Boy",
	"Script Supervisor", "Location Manager", "Set Decorator",
	"Prop Master", "Wardrobe Supervisor", "Colorist",
	"Post-Production Supervisor", "Music Supervisor", "Foley Artist",
	"Other",
}
