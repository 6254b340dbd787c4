package domain

import "time"

// MediaKind distinguishes the two catalog media types. The catalog does not
// model MANHWA/MANHUA as separate kinds; they arrive as MANGA with a
// country of origin.
type MediaKind string

const (
	KindAnime MediaKind = "ANIME"
	KindManga MediaKind = "MANGA"
)

// MediaStatus is the normalized release status of a catalog entry.
type MediaStatus string

const (
	StatusReleasing      MediaStatus = "RELEASING"
	StatusFinished       MediaStatus = "FINISHED"
	StatusNotYetReleased MediaStatus = "NOT_YET_RELEASED"
	StatusCancelled      MediaStatus = "CANCELLED"
	StatusHiatus         MediaStatus = "HIATUS"
	StatusUnknown        MediaStatus = "UNKNOWN"
)

// MediaTitle holds the upstream title variants. After normalization at
// least one of them is non-empty.
type MediaTitle struct {
	Romaji    string `json:"romaji"`
	English   string `json:"english"`
	Native    string `json:"native"`
	Preferred string `json:"preferred"`
}

// MediaSummary is the fully-defaulted card view of one catalog entry.
// Every field is safe to render as-is; absence of upstream data never
// survives normalization.
type MediaSummary struct {
	ID           int         `json:"id"`
	Kind         MediaKind   `json:"kind"`
	Title        MediaTitle  `json:"title"`
	DisplayTitle string      `json:"displayTitle"`
	Format       string      `json:"format"`
	Status       MediaStatus `json:"status"`
	Genres       []string    `json:"genres"`
	AverageScore int         `json:"averageScore"`
	Episodes     int         `json:"episodes"`
	Chapters     int         `json:"chapters"`
	Volumes      int         `json:"volumes"`
	CoverImage   string      `json:"coverImage"`
	BannerImage  string      `json:"bannerImage"`
	Color        string      `json:"color"`
	Description  string      `json:"description"`
	Rank         int         `json:"rank,omitempty"`
}

// FuzzyDate is the catalog's partial date; zero components mean unknown.
type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Int returns the compact YYYYMMDD integer the catalog uses in range
// filters, or 0 when the year is unknown.
func (d FuzzyDate) Int() int {
	if d.Year == 0 {
		return 0
	}
	return d.Year*10000 + d.Month*100 + d.Day
}

type Studio struct {
	Name   string `json:"name"`
	IsMain bool   `json:"isMain"`
}

type Trailer struct {
	ID        string `json:"id"`
	Site      string `json:"site"`
	Thumbnail string `json:"thumbnail"`
}

type NextAiringEpisode struct {
	AiringAt        int64 `json:"airingAt"`
	TimeUntilAiring int64 `json:"timeUntilAiring"`
	Episode         int   `json:"episode"`
}

type PersonName struct {
	Full   string `json:"full"`
	Native string `json:"native"`
}

type Character struct {
	ID    int        `json:"id"`
	Name  PersonName `json:"name"`
	Image string     `json:"image"`
	Role  string     `json:"role"`
}

type StaffMember struct {
	ID    int        `json:"id"`
	Name  PersonName `json:"name"`
	Image string     `json:"image"`
	Role  string     `json:"role"`
}

type Recommendation struct {
	ID           int       `json:"id"`
	DisplayTitle string    `json:"displayTitle"`
	CoverImage   string    `json:"coverImage"`
	Format       string    `json:"format"`
	AverageScore int       `json:"averageScore"`
	Kind         MediaKind `json:"kind"`
}

// MediaDetail is the full detail view behind /api/media/:id.
type MediaDetail struct {
	MediaSummary
	MeanScore       int                `json:"meanScore"`
	Popularity      int                `json:"popularity"`
	Favourites      int                `json:"favourites"`
	Season          string             `json:"season"`
	SeasonYear      int                `json:"seasonYear"`
	StartDate       FuzzyDate          `json:"startDate"`
	EndDate         FuzzyDate          `json:"endDate"`
	Duration        int                `json:"duration"`
	Source          string             `json:"source"`
	CountryOfOrigin string             `json:"countryOfOrigin"`
	IsAdult         bool               `json:"isAdult"`
	SiteURL         string             `json:"siteUrl"`
	Synonyms        []string           `json:"synonyms"`
	Studios         []Studio           `json:"studios"`
	Trailer         *Trailer           `json:"trailer"`
	NextAiring      *NextAiringEpisode `json:"nextAiringEpisode"`
	Characters      []Character        `json:"characters"`
	Staff           []StaffMember      `json:"staff"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// AiringItem is one scheduled episode airing.
type AiringItem struct {
	ID       int          `json:"id"`
	AiringAt int64        `json:"airingAt"`
	Episode  int          `json:"episode"`
	Time     string       `json:"time"`
	Media    MediaSummary `json:"media"`
}

// AiringDay groups schedule entries for one calendar day. Days with no
// airings are still present with an empty Items slice so a week view never
// has holes.
type AiringDay struct {
	Date       string       `json:"date"`
	DayOfWeek  string       `json:"dayOfWeek"`
	IsToday    bool         `json:"isToday"`
	IsTomorrow bool         `json:"isTomorrow"`
	Items      []AiringItem `json:"items"`
}

// UpcomingEntry is one not-yet-released title with its planned start date.
type UpcomingEntry struct {
	MediaSummary
	StartDate   FuzzyDate `json:"startDate"`
	ReleaseDate string    `json:"releaseDate"`
	Studio      string    `json:"studio"`
}

// DayKey formats t the way AiringDay.Date does.
func DayKey(t time.Time) string {
	return t.Format("Mon Jan 2")
}
