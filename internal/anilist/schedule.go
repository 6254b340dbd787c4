package anilist

import (
	"context"
	"time"

	"github.com/animeworld/animeworld-api/internal/domain"
	"golang.org/x/time/rate"
)

// itemsPerDayBound caps how many schedule entries are collected per day of
// the requested window before pagination stops early.
const itemsPerDayBound = 10

type schedulePage struct {
	Page struct {
		PageInfo        gqlPageInfo `json:"pageInfo"`
		AiringSchedules []struct {
			ID       int      `json:"id"`
			AiringAt int64    `json:"airingAt"`
			Episode  int      `json:"episode"`
			Media    gqlMedia `json:"media"`
		} `json:"airingSchedules"`
	} `json:"Page"`
}

// Schedule fetches the airing schedule for the next daysAhead days. Pages
// are fetched strictly one after another with a fixed delay between them
// to stay under the upstream rate limit; the loop stops when the upstream
// has no next page, the window is exhausted, or enough items were
// collected. Results are grouped by day, with empty days filled so the
// caller always sees the whole window.
func (c *Client) Schedule(ctx context.Context, daysAhead, perPage int) ([]domain.AiringDay, error) {
	now := c.now()
	maxAiringAt := now.Unix() + int64(daysAhead)*24*60*60
	itemBound := daysAhead * itemsPerDayBound

	// One token up front, then one per pageDelay
	limiter := rate.NewLimiter(rate.Every(c.pageDelay), 1)

	var collected []domain.AiringItem
	page := 1

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Op: "schedule", Err: err}
		}

		var result schedulePage
		err := c.do(ctx, "schedule", scheduleQuery, map[string]any{
			"page":            page,
			"perPage":         perPage,
			"airingAtGreater": now.Unix(),
		}, &result)
		if err != nil {
			return nil, err
		}

		for _, s := range result.Page.AiringSchedules {
			if s.AiringAt > maxAiringAt {
				continue
			}
			collected = append(collected, domain.AiringItem{
				ID:       s.ID,
				AiringAt: s.AiringAt,
				Episode:  s.Episode,
				Time:     time.Unix(s.AiringAt, 0).Format("15:04"),
				Media:    c.normalizeSummary(s.Media),
			})
		}

		if !result.Page.PageInfo.HasNextPage || len(collected) >= itemBound {
			break
		}
		page++
	}

	return groupByDay(collected, now, daysAhead), nil
}

func groupByDay(items []domain.AiringItem, now time.Time, daysAhead int) []domain.AiringDay {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	grouped := make(map[string][]domain.AiringItem)
	for _, item := range items {
		key := domain.DayKey(time.Unix(item.AiringAt, 0))
		grouped[key] = append(grouped[key], item)
	}

	days := make([]domain.AiringDay, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		date := today.AddDate(0, 0, i)
		key := domain.DayKey(date)

		dayItems := grouped[key]
		if dayItems == nil {
			dayItems = []domain.AiringItem{}
		}

		days = append(days, domain.AiringDay{
			Date:       key,
			DayOfWeek:  date.Format("Monday"),
			IsToday:    i == 0,
			IsTomorrow: i == 1,
			Items:      dayItems,
		})
	}

	return days
}
