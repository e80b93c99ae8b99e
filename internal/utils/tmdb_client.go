package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const (
	tmdbBaseURL   = "https://api.themoviedb.org/3"
	TMDBImageBase = "https://image.tmdb.org/t/p/w500"
	tmdbBackdrop  = "https://image.tmdb.org/t/p/w1280"
)

var imdbIDPattern = regexp.MustCompile(`nm\d+`)

// ExtractIMDBID pulls the person id (nm1234567) out of an IMDB profile URL.
func ExtractIMDBID(link string) string {
	return imdbIDPattern.FindString(link)
}

// TMDBClient talks to The Movie Database API. Every method degrades to a nil
// result when the client has no API key; metadata is an optional enrichment,
// never a hard dependency.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTMDBClient(apiKey string) *TMDBClient {
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: tmdbBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewTMDBClientWithBaseURL is used by tests to point the client at a stub server.
func NewTMDBClientWithBaseURL(apiKey, baseURL string) *TMDBClient {
	c := NewTMDBClient(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *TMDBClient) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type TMDBPerson struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ProfilePath string  `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
}

func (p *TMDBPerson) PhotoURL() string {
	if p == nil || p.ProfilePath == "" {
		return ""
	}
	return TMDBImageBase + p.ProfilePath
}

type TMDBCredit struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	MediaType    string  `json:"media_type"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Character    string  `json:"character"`
	Job          string  `json:"job"`
	Department   string  `json:"department"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
}

type TMDBPersonDetails struct {
	TMDBPerson
	CombinedCredits struct {
		Cast []TMDBCredit `json:"cast"`
		Crew []TMDBCredit `json:"crew"`
	} `json:"combined_credits"`
}

type TMDBProject struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	IMDBID       string  `json:"imdb_id"`
	Genres       []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []TMDBCredit `json:"cast"`
		Crew []TMDBCredit `json:"crew"`
	} `json:"credits"`
}

func (p *TMDBProject) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

func (p *TMDBProject) PosterURL() string {
	if p.PosterPath == "" {
		return ""
	}
	return TMDBImageBase + p.PosterPath
}

func (p *TMDBProject) BackdropURL() string {
	if p.BackdropPath == "" {
		return ""
	}
	return tmdbBackdrop + p.BackdropPath
}

func (c *TMDBClient) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// SearchPerson returns the best match for a name, or nil if none found.
func (c *TMDBClient) SearchPerson(ctx context.Context, name string) (*TMDBPerson, error) {
	if !c.Enabled() {
		return nil, nil
	}

	var result struct {
		Results []TMDBPerson `json:"results"`
	}
	query := url.Values{}
	query.Set("query", name)
	if err := c.get(ctx, "/search/person", query, &result); err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, nil
	}
	return &result.Results[0], nil
}

// FindByIMDBID resolves a TMDB person from an IMDB person id (nm...).
func (c *TMDBClient) FindByIMDBID(ctx context.Context, imdbID string) (*TMDBPerson, error) {
	if !c.Enabled() || imdbID == "" {
		return nil, nil
	}

	var result struct {
		PersonResults []TMDBPerson `json:"person_results"`
	}
	query := url.Values{}
	query.Set("external_source", "imdb_id")
	if err := c.get(ctx, "/find/"+imdbID, query, &result); err != nil {
		return nil, err
	}
	if len(result.PersonResults) == 0 {
		return nil, nil
	}
	return &result.PersonResults[0], nil
}

// GetPerson fetches full person details including combined credits.
func (c *TMDBClient) GetPerson(ctx context.Context, tmdbID int) (*TMDBPersonDetails, error) {
	if !c.Enabled() || tmdbID == 0 {
		return nil, nil
	}

	var details TMDBPersonDetails
	query := url.Values{}
	query.Set("append_to_response", "combined_credits")
	if err := c.get(ctx, fmt.Sprintf("/person/%d", tmdbID), query, &details); err != nil {
		return nil, err
	}
	if details.ID == 0 {
		return nil, nil
	}
	return &details, nil
}

// GetProject fetches a movie or tv entry with its credits.
func (c *TMDBClient) GetProject(ctx context.Context, mediaType string, id string) (*TMDBProject, error) {
	if !c.Enabled() {
		return nil, nil
	}

	path := "/movie/" + id
	if mediaType == "tv" {
		path = "/tv/" + id
	}

	var project TMDBProject
	query := url.Values{}
	query.Set("append_to_response", "credits")
	if err := c.get(ctx, path, query, &project); err != nil {
		return nil, err
	}
	if project.ID == 0 {
		return nil, nil
	}
	return &project, nil
}
