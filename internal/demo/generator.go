// Package demo generates placeholder episode and chapter listings for
// catalog entries. The upstream catalog carries counts but not per-episode
// metadata, so the listings are synthesized deterministically from the
// media id and clearly marked as simulated.
package demo

import (
	"fmt"
	"math/rand"
)

const (
	defaultEpisodeCount = 24
	defaultChapterCount = 50

	fillerChance  = 0.30
	specialChance = 0.10

	chaptersPerVolume = 10
)

// Episode is one synthesized episode entry.
type Episode struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	IsFiller  bool    `json:"isFiller"`
	Rating    float64 `json:"rating"`
	Simulated bool    `json:"simulated"`
}

// Chapter is one synthesized chapter entry.
type Chapter struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Volume    int    `json:"volume"`
	Pages     int    `json:"pages"`
	IsSpecial bool   `json:"isSpecial"`
	Simulated bool   `json:"simulated"`
}

// Episodes synthesizes an episode listing for the media id. The same id and
// count always produce the same listing. A non-positive count falls back to
// a typical two-cour season.
func Episodes(mediaID, count int) []Episode {
	if count <= 0 {
		count = defaultEpisodeCount
	}

	rng := rand.New(rand.NewSource(int64(mediaID)))
	episodes := make([]Episode, 0, count)
	for i := 1; i <= count; i++ {
		ep := Episode{
			Number:    i,
			Title:     fmt.Sprintf("Episode %d", i),
			IsFiller:  rng.Float64() < fillerChance,
			Rating:    roundTenth(8.0 + rng.Float64()*2.0),
			Simulated: true,
		}
		episodes = append(episodes, ep)
	}
	return episodes
}

// Chapters synthesizes a chapter listing for the media id, grouped into
// volumes of ten.
func Chapters(mediaID, count int) []Chapter {
	if count <= 0 {
		count = defaultChapterCount
	}

	rng := rand.New(rand.NewSource(int64(mediaID)))
	chapters := make([]Chapter, 0, count)
	for i := 1; i <= count; i++ {
		ch := Chapter{
			Number:    i,
			Title:     fmt.Sprintf("Chapter %d", i),
			Volume:    (i + chaptersPerVolume - 1) / chaptersPerVolume,
			Pages:     15 + rng.Intn(31),
			IsSpecial: rng.Float64() < specialChance,
			Simulated: true,
		}
		chapters = append(chapters, ch)
	}
	return chapters
}

func roundTenth(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
