package anilist

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/animeworld/animeworld-api/internal/domain"
)

// Raw catalog shapes. Optionals are pointers so normalization can tell
// "absent" from zero values.

type gqlPageInfo struct {
	Total       int  `json:"total"`
	PerPage     int  `json:"perPage"`
	CurrentPage int  `json:"currentPage"`
	LastPage    int  `json:"lastPage"`
	HasNextPage bool `json:"hasNextPage"`
}

type gqlTitle struct {
	Romaji        *string `json:"romaji"`
	English       *string `json:"english"`
	Native        *string `json:"native"`
	UserPreferred *string `json:"userPreferred"`
}

type gqlCoverImage struct {
	ExtraLarge *string `json:"extraLarge"`
	Large      *string `json:"large"`
	Medium     *string `json:"medium"`
	Color      *string `json:"color"`
}

type gqlDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

type gqlTrailer struct {
	ID        *string `json:"id"`
	Site      *string `json:"site"`
	Thumbnail *string `json:"thumbnail"`
}

type gqlNextAiring struct {
	AiringAt        int64 `json:"airingAt"`
	TimeUntilAiring int64 `json:"timeUntilAiring"`
	Episode         int   `json:"episode"`
}

type gqlStudioEdge struct {
	IsMain bool `json:"isMain"`
	Node   struct {
		Name string `json:"name"`
	} `json:"node"`
}

type gqlPersonNode struct {
	ID   int `json:"id"`
	Name struct {
		Full   *string `json:"full"`
		Native *string `json:"native"`
	} `json:"name"`
	Image struct {
		Large *string `json:"large"`
	} `json:"image"`
}

type gqlPersonEdge struct {
	Role *string       `json:"role"`
	Node gqlPersonNode `json:"node"`
}

type gqlRecommendations struct {
	Edges []struct {
		Node struct {
			MediaRecommendation *gqlMedia `json:"mediaRecommendation"`
		} `json:"node"`
	} `json:"edges"`
}

type gqlMedia struct {
	ID              int                 `json:"id"`
	Type            *string             `json:"type"`
	Title           *gqlTitle           `json:"title"`
	CoverImage      *gqlCoverImage      `json:"coverImage"`
	BannerImage     *string             `json:"bannerImage"`
	Description     *string             `json:"description"`
	Format          *string             `json:"format"`
	Status          *string             `json:"status"`
	Genres          []string            `json:"genres"`
	AverageScore    *int                `json:"averageScore"`
	MeanScore       *int                `json:"meanScore"`
	Popularity      *int                `json:"popularity"`
	Favourites      *int                `json:"favourites"`
	Episodes        *int                `json:"episodes"`
	Chapters        *int                `json:"chapters"`
	Volumes         *int                `json:"volumes"`
	Duration        *int                `json:"duration"`
	Season          *string             `json:"season"`
	SeasonYear      *int                `json:"seasonYear"`
	StartDate       *gqlDate            `json:"startDate"`
	EndDate         *gqlDate            `json:"endDate"`
	Studios         *struct {
		Edges []gqlStudioEdge `json:"edges"`
	} `json:"studios"`
	Staff *struct {
		Edges []gqlPersonEdge `json:"edges"`
	} `json:"staff"`
	Characters *struct {
		Edges []gqlPersonEdge `json:"edges"`
	} `json:"characters"`
	Trailer         *gqlTrailer         `json:"trailer"`
	Recommendations *gqlRecommendations `json:"recommendations"`
	SiteURL         *string             `json:"siteUrl"`
	IsAdult         bool                `json:"isAdult"`
	Source          *string             `json:"source"`
	CountryOfOrigin *string             `json:"countryOfOrigin"`
	Synonyms        []string            `json:"synonyms"`
	NextAiring      *gqlNextAiring      `json:"nextAiringEpisode"`
}

const (
	unknownTitle     = "Unknown Title"
	noDescription    = "No description available."
	placeholderColor = "#4a4a4a"
	maxCharacters    = 12
	maxStaff         = 10
)

var brTagRe = regexp.MustCompile(`(?i)<br\s*/?>`)

func strOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func intOr(i *int, def int) int {
	if i == nil {
		return def
	}
	return *i
}

// normalizeTitle guarantees at least one non-empty variant and picks the
// display title english > romaji > native.
func normalizeTitle(t *gqlTitle) (domain.MediaTitle, string) {
	title := domain.MediaTitle{}
	if t != nil {
		title.Romaji = strOr(t.Romaji, "")
		title.English = strOr(t.English, "")
		title.Native = strOr(t.Native, "")
		title.Preferred = strOr(t.UserPreferred, "")
	}

	display := title.English
	if display == "" {
		display = title.Romaji
	}
	if display == "" {
		display = title.Native
	}
	if display == "" {
		display = unknownTitle
		title.Romaji = unknownTitle
	}
	if title.Preferred == "" {
		title.Preferred = display
	}

	return title, display
}

func normalizeStatus(s *string) domain.MediaStatus {
	if s == nil {
		return domain.StatusUnknown
	}
	switch domain.MediaStatus(*s) {
	case domain.StatusReleasing, domain.StatusFinished, domain.StatusNotYetReleased,
		domain.StatusCancelled, domain.StatusHiatus:
		return domain.MediaStatus(*s)
	default:
		return domain.StatusUnknown
	}
}

func normalizeKind(t *string) domain.MediaKind {
	if t != nil && domain.MediaKind(*t) == domain.KindManga {
		return domain.KindManga
	}
	return domain.KindAnime
}

func normalizeDate(d *gqlDate) domain.FuzzyDate {
	if d == nil {
		return domain.FuzzyDate{}
	}
	return domain.FuzzyDate{
		Year:  intOr(d.Year, 0),
		Month: intOr(d.Month, 0),
		Day:   intOr(d.Day, 0),
	}
}

// cleanDescription turns upstream HTML into plain text: line breaks kept,
// every other tag stripped, entities decoded.
func (c *Client) cleanDescription(raw *string) string {
	if raw == nil || *raw == "" {
		return noDescription
	}

	text := brTagRe.ReplaceAllString(*raw, "\n")
	text = c.stripper.Sanitize(text)
	text = html.UnescapeString(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return noDescription
	}
	return text
}

func (c *Client) coverImage(m gqlMedia) (cover, color string) {
	cover = c.placeholder
	color = placeholderColor
	if m.CoverImage != nil {
		if url := strOr(m.CoverImage.ExtraLarge, strOr(m.CoverImage.Large, strOr(m.CoverImage.Medium, ""))); url != "" {
			cover = url
		}
		if col := strOr(m.CoverImage.Color, ""); col != "" {
			color = col
		}
	}
	return cover, color
}

// normalizeSummary produces a fully-defaulted card model. Post-condition:
// no field requires a nil or emptiness check before rendering.
func (c *Client) normalizeSummary(m gqlMedia) domain.MediaSummary {
	title, display := normalizeTitle(m.Title)
	cover, color := c.coverImage(m)

	banner := strOr(m.BannerImage, "")
	if banner == "" {
		banner = cover
	}

	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}

	return domain.MediaSummary{
		ID:           m.ID,
		Kind:         normalizeKind(m.Type),
		Title:        title,
		DisplayTitle: display,
		Format:       strOr(m.Format, "UNKNOWN"),
		Status:       normalizeStatus(m.Status),
		Genres:       genres,
		AverageScore: intOr(m.AverageScore, 0),
		Episodes:     intOr(m.Episodes, 0),
		Chapters:     intOr(m.Chapters, 0),
		Volumes:      intOr(m.Volumes, 0),
		CoverImage:   cover,
		BannerImage:  banner,
		Color:        color,
		Description:  c.cleanDescription(m.Description),
	}
}

func (c *Client) normalizeDetail(m gqlMedia) *domain.MediaDetail {
	detail := &domain.MediaDetail{
		MediaSummary:    c.normalizeSummary(m),
		MeanScore:       intOr(m.MeanScore, 0),
		Popularity:      intOr(m.Popularity, 0),
		Favourites:      intOr(m.Favourites, 0),
		Season:          strOr(m.Season, ""),
		SeasonYear:      intOr(m.SeasonYear, 0),
		StartDate:       normalizeDate(m.StartDate),
		EndDate:         normalizeDate(m.EndDate),
		Duration:        intOr(m.Duration, 0),
		Source:          strOr(m.Source, ""),
		CountryOfOrigin: strOr(m.CountryOfOrigin, ""),
		IsAdult:         m.IsAdult,
		SiteURL:         strOr(m.SiteURL, ""),
		Synonyms:        m.Synonyms,
		Studios:         []domain.Studio{},
		Characters:      []domain.Character{},
		Staff:           []domain.StaffMember{},
		Recommendations: []domain.Recommendation{},
	}

	if detail.Synonyms == nil {
		detail.Synonyms = []string{}
	}

	if m.Studios != nil {
		// Main studio first, matching how the views title-line it
		for _, e := range m.Studios.Edges {
			s := domain.Studio{Name: e.Node.Name, IsMain: e.IsMain}
			if e.IsMain {
				detail.Studios = append([]domain.Studio{s}, detail.Studios...)
			} else {
				detail.Studios = append(detail.Studios, s)
			}
		}
	}

	if m.Characters != nil {
		for _, e := range m.Characters.Edges {
			if len(detail.Characters) == maxCharacters {
				break
			}
			detail.Characters = append(detail.Characters, domain.Character{
				ID: e.Node.ID,
				Name: domain.PersonName{
					Full:   strOr(e.Node.Name.Full, "Unknown"),
					Native: strOr(e.Node.Name.Native, ""),
				},
				Image: strOr(e.Node.Image.Large, c.placeholder),
				Role:  strOr(e.Role, ""),
			})
		}
	}

	if m.Staff != nil {
		for _, e := range m.Staff.Edges {
			if len(detail.Staff) == maxStaff {
				break
			}
			detail.Staff = append(detail.Staff, domain.StaffMember{
				ID: e.Node.ID,
				Name: domain.PersonName{
					Full:   strOr(e.Node.Name.Full, "Unknown"),
					Native: strOr(e.Node.Name.Native, ""),
				},
				Image: strOr(e.Node.Image.Large, c.placeholder),
				Role:  strOr(e.Role, ""),
			})
		}
	}

	if m.Trailer != nil {
		detail.Trailer = &domain.Trailer{
			ID:        strOr(m.Trailer.ID, ""),
			Site:      strOr(m.Trailer.Site, ""),
			Thumbnail: strOr(m.Trailer.Thumbnail, ""),
		}
	}

	if m.NextAiring != nil {
		detail.NextAiring = &domain.NextAiringEpisode{
			AiringAt:        m.NextAiring.AiringAt,
			TimeUntilAiring: m.NextAiring.TimeUntilAiring,
			Episode:         m.NextAiring.Episode,
		}
	}

	detail.Recommendations = c.normalizeRecommendations(m.Recommendations)

	return detail
}

func (c *Client) normalizeRecommendations(recs *gqlRecommendations) []domain.Recommendation {
	out := []domain.Recommendation{}
	if recs == nil {
		return out
	}

	for _, e := range recs.Edges {
		rec := e.Node.MediaRecommendation
		if rec == nil {
			continue
		}
		_, display := normalizeTitle(rec.Title)
		cover, _ := c.coverImage(*rec)
		out = append(out, domain.Recommendation{
			ID:           rec.ID,
			DisplayTitle: display,
			CoverImage:   cover,
			Format:       strOr(rec.Format, "UNKNOWN"),
			AverageScore: intOr(rec.AverageScore, 0),
			Kind:         normalizeKind(rec.Type),
		})
	}

	return out
}

func (c *Client) normalizeUpcoming(m gqlMedia) domain.UpcomingEntry {
	entry := domain.UpcomingEntry{
		MediaSummary: c.normalizeSummary(m),
		StartDate:    normalizeDate(m.StartDate),
		ReleaseDate:  "TBA",
		Studio:       "Unknown",
	}

	if entry.StartDate.Year != 0 {
		month := entry.StartDate.Month
		if month == 0 {
			month = 1
		}
		day := entry.StartDate.Day
		if day == 0 {
			day = 1
		}
		entry.ReleaseDate = fmt.Sprintf("%s %d, %d", monthName(month), day, entry.StartDate.Year)
	}

	if m.Studios != nil && len(m.Studios.Edges) > 0 {
		entry.Studio = m.Studios.Edges[0].Node.Name
	}

	return entry
}

func monthName(m int) string {
	names := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	if m < 1 || m > 12 {
		return "Jan"
	}
	return names[m-1]
}
