package spotify

// Paging is a page of results from a list endpoint. For collected results
// Items holds every item across all pages and the remaining fields describe
// the last page fetched.
type Paging[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Image is an artwork or avatar image.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers holds follower information.
type Followers struct {
	Total int `json:"total"`
}

// ExternalURLs holds links to the resource outside the API.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// User is a user profile. Private fields (Email, Country, Product) are only
// populated for the current user.
type User struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	Email        string       `json:"email,omitempty"`
	Country      string       `json:"country,omitempty"`
	Product      string       `json:"product,omitempty"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// Artist is an artist. Genres, Images and Popularity are absent from the
// simplified objects embedded in tracks and albums.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres,omitempty"`
	Images       []Image      `json:"images,omitempty"`
	Popularity   int          `json:"popularity,omitempty"`
	Followers    *Followers   `json:"followers,omitempty"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// Album is an album.
type Album struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	AlbumType            string         `json:"album_type"`
	Artists              []Artist       `json:"artists"`
	ReleaseDate          string         `json:"release_date"`
	ReleaseDatePrecision string         `json:"release_date_precision"`
	TotalTracks          int            `json:"total_tracks"`
	Images               []Image        `json:"images"`
	Genres               []string       `json:"genres,omitempty"`
	Label                string         `json:"label,omitempty"`
	Popularity           int            `json:"popularity,omitempty"`
	Tracks               *Paging[Track] `json:"tracks,omitempty"`
	ExternalURLs         ExternalURLs   `json:"external_urls"`
	URI                  string         `json:"uri"`
}

// ExternalIDs holds industry identifiers for a track.
type ExternalIDs struct {
	ISRC string `json:"isrc,omitempty"`
}

// Track is a track. Album, ExternalIDs and Popularity are absent from the
// simplified tracks returned by album track listings.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        *Album       `json:"album,omitempty"`
	DiscNumber   int          `json:"disc_number"`
	TrackNumber  int          `json:"track_number"`
	DurationMS   int          `json:"duration_ms"`
	Explicit     bool         `json:"explicit"`
	ExternalIDs  ExternalIDs  `json:"external_ids"`
	Popularity   int          `json:"popularity,omitempty"`
	PreviewURL   string       `json:"preview_url,omitempty"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// SavedTrack is a track saved in the current user's library.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// PlaylistTrack is a track within a playlist.
type PlaylistTrack struct {
	AddedAt string `json:"added_at"`
	AddedBy *User  `json:"added_by,omitempty"`
	IsLocal bool   `json:"is_local"`
	Track   Track  `json:"track"`
}

// Playlist is a playlist. Tracks holds the first page of tracks for full
// playlist objects and only Total for simplified ones.
type Playlist struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Owner         User                  `json:"owner"`
	Public        bool                  `json:"public"`
	Collaborative bool                  `json:"collaborative"`
	SnapshotID    string                `json:"snapshot_id"`
	Tracks        Paging[PlaylistTrack] `json:"tracks"`
	Images        []Image               `json:"images"`
	ExternalURLs  ExternalURLs          `json:"external_urls"`
	URI           string                `json:"uri"`
}

// Snapshot identifies a playlist version after a modification.
type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`
}

// SearchResult holds the page matching the searched type; the others are nil.
type SearchResult struct {
	Artists *Paging[Artist] `json:"artists,omitempty"`
	Albums  *Paging[Album]  `json:"albums,omitempty"`
	Tracks  *Paging[Track]  `json:"tracks,omitempty"`
}
