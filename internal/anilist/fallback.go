package anilist

import "github.com/animeworld/animeworld-api/internal/domain"

// FallbackTrending returns the built-in trending list served when the
// catalog is unreachable. Entries use real catalog ids so detail
// navigation still works once the upstream recovers.
func FallbackTrending(kind domain.MediaKind) []domain.MediaSummary {
	if kind == domain.KindManga {
		return fallbackManga()
	}
	return fallbackAnime()
}

func fallbackAnime() []domain.MediaSummary {
	return []domain.MediaSummary{
		{
			ID:           21,
			Kind:         domain.KindAnime,
			Title:        domain.MediaTitle{Romaji: "One Piece", English: "One Piece", Native: "ワンピース", Preferred: "One Piece"},
			DisplayTitle: "One Piece",
			Format:       "TV",
			Status:       domain.StatusReleasing,
			Genres:       []string{"Action", "Adventure", "Fantasy"},
			AverageScore: 88,
			Episodes:     0,
			CoverImage:   "https://s4.anilist.co/file/anilistcdn/media/anime/cover/medium/nx21-tXMN3Y20PIL9.jpg",
			BannerImage:  "https://s4.anilist.co/file/anilistcdn/media/anime/banner/21-wf37VakJmZqs.jpg",
			Color:        "#e4a15d",
			Description:  "Monkey D. Luffy and his crew sail the Grand Line in search of the ultimate treasure, the One Piece.",
			Rank:         1,
		},
		{
			ID:           101922,
			Kind:         domain.KindAnime,
			Title:        domain.MediaTitle{Romaji: "Kimetsu no Yaiba", English: "Demon Slayer: Kimetsu no Yaiba", Native: "鬼滅の刃", Preferred: "Demon Slayer: Kimetsu no Yaiba"},
			DisplayTitle: "Demon Slayer: Kimetsu no Yaiba",
			Format:       "TV",
			Status:       domain.StatusFinished,
			Genres:       []string{"Action", "Fantasy"},
			AverageScore: 83,
			Episodes:     26,
			CoverImage:   "https://s4.anilist.co/file/anilistcdn/media/anime/cover/medium/bx101922-PEn1CTc93blC.jpg",
			BannerImage:  "https://s4.anilist.co/file/anilistcdn/media/anime/banner/101922-YfZhKBUDDS6L.jpg",
			Color:        "#ff6b6b",
			Description:  "A boy becomes a demon slayer to avenge his family and cure his sister.",
			Rank:         2,
		},
		{
			ID:           16498,
			Kind:         domain.KindAnime,
			Title:        domain.MediaTitle{Romaji: "Shingeki no Kyojin", English: "Attack on Titan", Native: "進撃の巨人", Preferred: "Attack on Titan"},
			DisplayTitle: "Attack on Titan",
			Format:       "TV",
			Status:       domain.StatusFinished,
			Genres:       []string{"Action", "Drama", "Mystery"},
			AverageScore: 84,
			Episodes:     25,
			CoverImage:   "https://s4.anilist.co/file/anilistcdn/media/anime/cover/medium/bx16498-C6FPmWm59CyP.jpg",
			BannerImage:  "https://s4.anilist.co/file/anilistcdn/media/anime/banner/16498-8jpFCOcDmneX.jpg",
			Color:        "#d0a158",
			Description:  "Humanity fights for survival behind walls besieged by man-eating titans.",
			Rank:         3,
		},
	}
}

func fallbackManga() []domain.MediaSummary {
	return []domain.MediaSummary{
		{
			ID:           30013,
			Kind:         domain.KindManga,
			Title:        domain.MediaTitle{Romaji: "One Piece", English: "One Piece", Native: "ワンピース", Preferred: "One Piece"},
			DisplayTitle: "One Piece",
			Format:       "MANGA",
			Status:       domain.StatusReleasing,
			Genres:       []string{"Action", "Adventure", "Fantasy"},
			AverageScore: 92,
			Chapters:     0,
			CoverImage:   "https://s4.anilist.co/file/anilistcdn/media/manga/cover/medium/bx30013-ulXvn0lzWvsz.jpg",
			BannerImage:  "https://s4.anilist.co/file/anilistcdn/media/manga/banner/30013-oT7NrtUr3mPJ.jpg",
			Color:        "#e4a15d",
			Description:  "Monkey D. Luffy sets out to become King of the Pirates.",
			Rank:         1,
		},
		{
			ID:           105398,
			Kind:         domain.KindManga,
			Title:        domain.MediaTitle{Romaji: "Na Honjaman Level Up", English: "Solo Leveling", Native: "나 혼자만 레벨업", Preferred: "Solo Leveling"},
			DisplayTitle: "Solo Leveling",
			Format:       "MANGA",
			Status:       domain.StatusFinished,
			Genres:       []string{"Action", "Adventure", "Fantasy"},
			AverageScore: 85,
			Chapters:     201,
			CoverImage:   "https://s4.anilist.co/file/anilistcdn/media/manga/cover/medium/bx105398-b673Vt5ZSuz3.jpg",
			BannerImage:  "https://s4.anilist.co/file/anilistcdn/media/manga/banner/105398-BPkPgm09VmCc.jpg",
			Color:        "#6b8cff",
			Description:  "The world's weakest hunter gains the sole power to level up.",
			Rank:         2,
		},
		{
			ID:           30002,
			Kind:         domain.KindManga,
			Title:        domain.MediaTitle{Romaji: "Berserk", English: "Berserk", Native: "ベルセルク", Preferred: "Berserk"},
			DisplayTitle: "Berserk",
			Format:       "MANGA",
			Status:       domain.StatusReleasing,
			Genres:       []string{"Action", "Drama", "Horror"},
			AverageScore: 93,
			Chapters:     0,
			CoverImage:   "https://s4.anilist.co/file/anilistcdn/media/manga/cover/medium/bx30002-7EzO7o21jzeF.jpg",
			BannerImage:  "https://s4.anilist.co/file/anilistcdn/media/manga/banner/30002-3TuoSMl20fUX.jpg",
			Color:        "#1c1c1c",
			Description:  "A lone mercenary wanders a dark medieval world marked by demons.",
			Rank:         3,
		},
	}
}
