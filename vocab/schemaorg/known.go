package schemaorg

import (
	"github.com/c360studio/semsnip/lint"
	"github.com/c360studio/semsnip/rules"
)

// recommend builds one recommendation group per local name, each satisfied
// by either namespace form.
func recommend(names ...string) [][]string {
	out := make([][]string, 0, len(names))
	for _, n := range names {
		out = append(out, []string{NS + n, NSSecure + n})
	}
	return out
}

// KnownTypes returns the lint catalogue: per type family, the properties
// this package understands and the ones a useful snippet should carry.
func KnownTypes() []lint.TypeRules {
	return []lint.TypeRules{
		{
			Key: rules.MustPattern(typePattern("Person")),
			Known: expand(PropName, PropImage, PropURL, PropDescription, PropJobTitle,
				PropWorksFor, PropEmail, PropTelephone, PropAddress),
			Recommended: recommend(PropName),
		},
		{
			Key: rules.MustPattern(typePattern("Product")),
			Known: expand(PropName, PropImage, PropURL, PropDescription, PropBrand,
				PropOffers, PropAggregateRating),
			Recommended: recommend(PropName, PropImage, PropOffers),
		},
		{
			Key: rules.MustPattern(typePattern("Event")),
			Known: expand(PropName, PropImage, PropURL, PropDescription, PropStartDate,
				PropEndDate, PropLocation, PropPerformer),
			Recommended: recommend(PropName, PropStartDate, PropLocation),
		},
		{
			Key: rules.MustPattern(typePattern("MusicAlbum")),
			Known: expand(PropName, PropImage, PropURL, PropDescription, PropByArtist,
				PropTrack, PropNumTracks, PropDatePublished, PropGenre),
			Recommended: recommend(PropName, PropByArtist),
		},
		{
			Key: rules.MustPattern(typePattern("MusicRecording")),
			Known: expand(PropName, PropImage, PropURL, PropDescription, PropByArtist,
				PropDuration, PropInAlbum),
			Recommended: recommend(PropName),
		},
		{
			Key: rules.MustPattern(typePattern("Review")),
			Known: expand(PropName, PropHeadline, PropDescription, PropAuthor,
				PropDatePublished, PropReviewBody, PropAggregateRating),
			Recommended: recommend(PropName, PropAuthor),
		},
		// Catch-all keeps unannotated schema.org types from tripping the
		// "no known vocabulary" warning while still flagging recommended
		// basics.
		{
			Key:         rules.MustPattern(`https?://schema\.org/.+`),
			Known:       expand(PropName, PropImage, PropURL, PropDescription),
			Recommended: recommend(PropName),
		},
	}
}
