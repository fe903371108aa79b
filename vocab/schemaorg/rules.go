package schemaorg

import (
	"github.com/c360studio/semsnip/render"
	"github.com/c360studio/semsnip/rules"
)

// firstOnly builds a per-property policy map covering both namespace forms.
func firstOnly(names ...string) map[string]rules.MultiPolicy {
	out := make(map[string]rules.MultiPolicy, len(names)*2)
	for _, iri := range expand(names...) {
		out[iri] = rules.FirstOnly
	}
	return out
}

// dispatch attaches a named formatter to both namespace forms of each
// property.
func dispatch(byLocal map[string]rules.FormatSingle) rules.FormatSingle {
	byProp := make(map[string]rules.FormatSingle, len(byLocal)*2)
	for local, f := range byLocal {
		byProp[NS+local] = f
		byProp[NSSecure+local] = f
	}
	return rules.Dispatch(byProp)
}

// Entries returns the schema.org catalogue in registration order. More
// specific types carry lower priorities than the generic fallback, so a
// resource typed as both Thing and Person renders as a Person.
func Entries() []rules.Entry {
	return []rules.Entry{
		{
			Key: rules.MustPattern(typePattern("Person")),
			Rule: &rules.RuleSet{
				Name:             "schema-person",
				Priority:         10,
				TitleProps:       expand(PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropJobTitle, PropWorksFor, PropEmail, PropTelephone, PropURL),
				DescriptionProps: expand(PropDescription),
				MultiPolicies:    firstOnly(PropImage),
				Single:           dispatch(map[string]rules.FormatSingle{PropURL: render.FormatURL}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("Organization")),
			Rule: &rules.RuleSet{
				Name:             "schema-organization",
				Priority:         10,
				TitleProps:       expand(PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropURL, PropTelephone, PropAddress),
				DescriptionProps: expand(PropDescription),
				MultiPolicies:    firstOnly(PropImage),
				Single:           dispatch(map[string]rules.FormatSingle{PropURL: render.FormatURL}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("Product")),
			Rule: &rules.RuleSet{
				Name:             "schema-product",
				Priority:         10,
				TitleProps:       expand(PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropBrand, PropAggregateRating, PropOffers),
				DescriptionProps: expand(PropDescription),
				MultiPolicies:    firstOnly(PropImage),
			},
		},
		{
			Key: rules.MustPattern(typePattern("Offer")),
			Rule: &rules.RuleSet{
				Name:       "schema-offer",
				Priority:   20,
				TitleProps: expand(PropName),
				BodyProps:  expand(PropPrice, PropPriceCurrency, PropAvailability),
			},
		},
		{
			Key: rules.MustPattern(typePattern("AggregateRating")),
			Rule: &rules.RuleSet{
				Name:      "schema-aggregate-rating",
				Priority:  20,
				BodyProps: expand(PropRatingValue, PropReviewCount),
				Single:    dispatch(map[string]rules.FormatSingle{PropRatingValue: render.FormatRating}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("Rating")),
			Rule: &rules.RuleSet{
				Name:      "schema-rating",
				Priority:  20,
				BodyProps: expand(PropRatingValue, PropBestRating),
				Single:    dispatch(map[string]rules.FormatSingle{PropRatingValue: render.FormatRating}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("Review")),
			Rule: &rules.RuleSet{
				Name:             "schema-review",
				Priority:         15,
				TitleProps:       expand(PropName, PropHeadline),
				BodyProps:        expand(PropAuthor, PropDatePublished, PropAggregateRating),
				DescriptionProps: expand(PropReviewBody, PropDescription),
				Single:           dispatch(map[string]rules.FormatSingle{PropDatePublished: render.FormatDate}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("Event")),
			Rule: &rules.RuleSet{
				Name:             "schema-event",
				Priority:         10,
				TitleProps:       expand(PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropStartDate, PropEndDate, PropLocation, PropPerformer),
				DescriptionProps: expand(PropDescription),
				MultiPolicies:    firstOnly(PropImage),
				Single: dispatch(map[string]rules.FormatSingle{
					PropStartDate: render.FormatDate,
					PropEndDate:   render.FormatDate,
				}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("MusicAlbum")),
			Rule: &rules.RuleSet{
				Name:             "schema-music-album",
				Priority:         10,
				TitleProps:       expand(PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropByArtist, PropNumTracks, PropDatePublished, PropGenre),
				DescriptionProps: expand(PropDescription),
				NestedProps:      expand(PropTrack),
				MultiPolicies:    firstOnly(PropImage),
				Single:           dispatch(map[string]rules.FormatSingle{PropDatePublished: render.FormatDate}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("MusicRecording")),
			Rule: &rules.RuleSet{
				Name:       "schema-music-recording",
				Priority:   15,
				TitleProps: expand(PropName),
				BodyProps:  expand(PropByArtist, PropDuration, PropInAlbum),
			},
		},
		{
			Key: rules.MustPattern(typePattern("MusicGroup")),
			Rule: &rules.RuleSet{
				Name:             "schema-music-group",
				Priority:         15,
				TitleProps:       expand(PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropGenre, PropURL),
				DescriptionProps: expand(PropDescription),
				MultiPolicies:    firstOnly(PropImage),
				Single:           dispatch(map[string]rules.FormatSingle{PropURL: render.FormatURL}),
			},
		},
		{
			Key: rules.MustPattern(typePattern("ImageObject")),
			Rule: &rules.RuleSet{
				Name:          "schema-image-object",
				Priority:      20,
				TitleProps:    expand(PropCaption, PropName),
				PhotoProps:    expand(PropContentURL, PropURL),
				MultiPolicies: firstOnly(PropContentURL, PropURL),
			},
		},
		{
			Key: rules.MustPattern(typePattern("(News)?Article|BlogPosting")),
			Rule: &rules.RuleSet{
				Name:             "schema-article",
				Priority:         10,
				TitleProps:       expand(PropHeadline, PropName),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropAuthor, PropDatePublished),
				DescriptionProps: expand(PropDescription, PropArticleBody),
				MultiPolicies:    firstOnly(PropImage),
				Single:           dispatch(map[string]rules.FormatSingle{PropDatePublished: render.FormatDate}),
			},
		},
		// Generic fallback for any other schema.org type: Thing-level role
		// lists at near-default priority so specific rules always win.
		{
			Key: rules.MustPattern(`https?://schema\.org/.+`),
			Rule: &rules.RuleSet{
				Name:             "schema-generic",
				Priority:         90,
				TitleProps:       expand(PropName, PropHeadline),
				PhotoProps:       expand(PropImage),
				BodyProps:        expand(PropURL),
				DescriptionProps: expand(PropDescription),
				MultiPolicies:    firstOnly(PropImage),
				Single:           dispatch(map[string]rules.FormatSingle{PropURL: render.FormatURL}),
			},
		},
	}
}
