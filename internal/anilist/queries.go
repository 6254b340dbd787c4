package anilist

// GraphQL documents sent to the catalog endpoint. Field selections mirror
// what the views consume; everything optional is defaulted during
// normalization.

const trendingAnimeQuery = `
query ($perPage: Int) {
  Page(page: 1, perPage: $perPage) {
    media(type: ANIME, sort: TRENDING_DESC, status: RELEASING) {
      id
      type
      title { romaji english native userPreferred }
      coverImage { extraLarge large medium color }
      bannerImage
      description
      averageScore
      episodes
      format
      status
      genres
      trailer { id site thumbnail }
      nextAiringEpisode { airingAt timeUntilAiring episode }
    }
  }
}`

const trendingMangaQuery = `
query ($perPage: Int) {
  Page(page: 1, perPage: $perPage) {
    media(type: MANGA, sort: TRENDING_DESC) {
      id
      type
      title { romaji english native userPreferred }
      coverImage { extraLarge large medium color }
      bannerImage
      description
      averageScore
      chapters
      volumes
      format
      status
      genres
      countryOfOrigin
    }
  }
}`

const searchQuery = `
query ($search: String, $type: MediaType, $page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    pageInfo { total perPage currentPage lastPage hasNextPage }
    media(search: $search, type: $type) {
      id
      type
      title { romaji english native userPreferred }
      format
      status
      description
      episodes
      chapters
      genres
      averageScore
      coverImage { extraLarge large medium color }
      bannerImage
    }
  }
}`

const detailQuery = `
query ($id: Int) {
  Media(id: $id) {
    id
    type
    title { romaji english native userPreferred }
    description
    bannerImage
    coverImage { extraLarge large medium color }
    format
    status
    episodes
    chapters
    volumes
    duration
    genres
    averageScore
    meanScore
    popularity
    favourites
    season
    seasonYear
    startDate { year month day }
    endDate { year month day }
    studios { edges { isMain node { name } } }
    staff { edges { role node { id name { full native } image { large } } } }
    trailer { id site thumbnail }
    characters { edges { role node { id name { full native } image { large } } } }
    recommendations {
      edges {
        node {
          mediaRecommendation {
            id
            type
            title { romaji english native userPreferred }
            coverImage { extraLarge large medium color }
            format
            averageScore
          }
        }
      }
    }
    siteUrl
    isAdult
    source
    countryOfOrigin
    synonyms
    nextAiringEpisode { airingAt timeUntilAiring episode }
  }
}`

const recommendationsQuery = `
query ($id: Int) {
  Media(id: $id) {
    id
    recommendations {
      edges {
        node {
          mediaRecommendation {
            id
            type
            title { romaji english native userPreferred }
            coverImage { extraLarge large medium color }
            format
            averageScore
          }
        }
      }
    }
  }
}`

const upcomingQuery = `
query ($page: Int, $perPage: Int, $startDateGreater: FuzzyDateInt) {
  Page(page: $page, perPage: $perPage) {
    pageInfo { total currentPage lastPage hasNextPage }
    media(sort: START_DATE, startDate_greater: $startDateGreater, type: ANIME) {
      id
      type
      title { romaji english native userPreferred }
      coverImage { extraLarge large medium color }
      bannerImage
      description
      averageScore
      status
      genres
      episodes
      format
      startDate { year month day }
      studios { edges { isMain node { name } } }
    }
  }
}`

const scheduleQuery = `
query ($page: Int, $perPage: Int, $airingAtGreater: Int) {
  Page(page: $page, perPage: $perPage) {
    pageInfo { total currentPage lastPage hasNextPage }
    airingSchedules(sort: TIME, airingAt_greater: $airingAtGreater) {
      id
      airingAt
      episode
      media {
        id
        type
        title { romaji english native userPreferred }
        coverImage { extraLarge large medium color }
        bannerImage
        description
        averageScore
        status
        genres
        episodes
        format
      }
    }
  }
}`

const studiosQuery = `
query ($perPage: Int) {
  Page(page: 1, perPage: $perPage) {
    studios(sort: FAVOURITES_DESC) { name }
  }
}`
