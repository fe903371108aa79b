package schemaorg

// Namespace forms. schema.org documents appear with either scheme; rules
// must bind to both.
const (
	// NS is the historical (canonical in published markup) namespace.
	NS = "http://schema.org/"

	// NSSecure is the https namespace variant.
	NSSecure = "https://schema.org/"
)

// Common property local names used by the catalogue.
const (
	PropName            = "name"
	PropImage           = "image"
	PropURL             = "url"
	PropDescription     = "description"
	PropJobTitle        = "jobTitle"
	PropWorksFor        = "worksFor"
	PropEmail           = "email"
	PropTelephone       = "telephone"
	PropAddress         = "address"
	PropBrand           = "brand"
	PropOffers          = "offers"
	PropPrice           = "price"
	PropPriceCurrency   = "priceCurrency"
	PropAvailability    = "availability"
	PropAggregateRating = "aggregateRating"
	PropRatingValue     = "ratingValue"
	PropBestRating      = "bestRating"
	PropReviewCount     = "reviewCount"
	PropReviewBody      = "reviewBody"
	PropAuthor          = "author"
	PropDatePublished   = "datePublished"
	PropStartDate       = "startDate"
	PropEndDate         = "endDate"
	PropLocation        = "location"
	PropPerformer       = "performer"
	PropByArtist        = "byArtist"
	PropTrack           = "track"
	PropNumTracks       = "numTracks"
	PropDuration        = "duration"
	PropInAlbum         = "inAlbum"
	PropGenre           = "genre"
	PropHeadline        = "headline"
	PropArticleBody     = "articleBody"
	PropCaption         = "caption"
	PropContentURL      = "contentUrl"
)

// expand returns the http and https IRI forms of the given local property
// names, in role-list priority order. A document uses one namespace form, so
// the doubled list never duplicates values at render time.
func expand(names ...string) []string {
	out := make([]string, 0, len(names)*2)
	for _, n := range names {
		out = append(out, NS+n, NSSecure+n)
	}
	return out
}

// typePattern builds the match-key expression for one schema.org type,
// covering both namespace forms.
func typePattern(local string) string {
	return `https?://schema\.org/` + local
}
