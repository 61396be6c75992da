// internal/engine/normalize.go
package engine

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedListing rejects a record whose identifier is missing or
// empty. It is the only way normalization can fail; every other field
// degrades to an unknown sentinel.
var ErrMalformedListing = errors.New("malformed listing: missing identifier")

var (
	// numberRegexp captures the first numeric value in a price or
	// review string once currency symbols and commas are stripped.
	numberRegexp = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
	digitsRegexp = regexp.MustCompile(`[0-9]+`)
)

// genericBrandWords are skipped when recovering a brand from a title.
var genericBrandWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "new": {}, "pack": {}, "set": {}, "piece": {},
}

var brandCleanRegexp = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Normalize turns an arbitrary raw record into a canonical RawListing.
// It is total on every input that carries an identifier: sparse or
// garbled price/review/rating data becomes an unknown sentinel, never an
// error.
func Normalize(rec RawRecord) (RawListing, error) {
	asin := strings.TrimSpace(rec.ASIN)
	if asin == "" {
		return RawListing{}, ErrMalformedListing
	}

	l := RawListing{
		ASIN:  asin,
		Title: strings.TrimSpace(rec.Title),
		Rank:  rec.Position,
		Link:  rec.Link,
		Prime: rec.IsPrime,
	}
	if l.Rank < 1 {
		l.Rank = 0 // unknown; the caller assigns the position at estimation time
	}

	l.Price, l.PriceKnown = parsePrice(rec.Price)
	l.ReviewCount, l.ReviewsKnown = parseReviews(rec.Reviews)
	l.Rating = parseRating(rec.Rating)

	l.ImageURL = rec.ImageURL
	if l.ImageURL == "" {
		l.ImageURL = rec.Thumbnail
	}

	l.Brand = normalizeBrand(rec.Brand, l.Title)

	return l, nil
}

// NormalizeAll normalizes a batch, dropping malformed records. The
// count of dropped records is returned so callers can log it.
func NormalizeAll(recs []RawRecord) ([]RawListing, int) {
	out := make([]RawListing, 0, len(recs))
	dropped := 0
	for _, rec := range recs {
		l, err := Normalize(rec)
		if err != nil {
			dropped++
			continue
		}
		out = append(out, l)
	}
	return out, dropped
}

// parsePrice accepts a bare number, a numeric string with currency
// symbols and commas, or a structured object exposing a raw string
// and/or numeric value. A result that is not a positive finite number is
// unknown, not zero-and-valid.
func parsePrice(v interface{}) (float64, bool) {
	switch p := v.(type) {
	case nil:
		return 0, false
	case float64:
		return checkPrice(p)
	case float32:
		return checkPrice(float64(p))
	case int:
		return checkPrice(float64(p))
	case int64:
		return checkPrice(float64(p))
	case string:
		return checkPrice(parsePriceString(p))
	case map[string]interface{}:
		// Provider price objects look like {"raw": "$24.99", "value": 24.99}.
		if raw, ok := p["raw"].(string); ok {
			if price, known := checkPrice(parsePriceString(raw)); known {
				return price, true
			}
		}
		if val, ok := p["value"].(float64); ok {
			return checkPrice(val)
		}
		return 0, false
	default:
		return 0, false
	}
}

func parsePriceString(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	match := numberRegexp.FindString(s)
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return f
}

func checkPrice(p float64) (float64, bool) {
	// NaN and infinities fail both comparisons below.
	if p > 0 && p < 1e9 {
		return p, true
	}
	return 0, false
}

// maxReviewCount bounds a parsed review figure the same way checkPrice
// bounds a price. Beyond it the number is garbage, and converting an
// unbounded float64 to int is implementation-defined.
const maxReviewCount = 1e9

// parseReviews accepts a bare number or a string containing digits and
// commas. Missing, non-numeric or absurd input is unknown (0, flagged).
func parseReviews(v interface{}) (int, bool) {
	switch r := v.(type) {
	case nil:
		return 0, false
	case float64:
		// NaN fails both comparisons.
		if r >= 0 && r < maxReviewCount {
			return int(r), true
		}
		return 0, false
	case int:
		if r < 0 || r >= maxReviewCount {
			return 0, false
		}
		return r, true
	case string:
		cleaned := strings.ReplaceAll(r, ",", "")
		match := digitsRegexp.FindString(cleaned)
		if match == "" {
			return 0, false
		}
		n, err := strconv.Atoi(match)
		if err != nil || n >= maxReviewCount {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// parseRating clamps to [0, 5]; unparsable input is 0.
func parseRating(v interface{}) float64 {
	var r float64
	switch val := v.(type) {
	case float64:
		r = val
	case int:
		r = float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.Split(val, " ")[0]), 64)
		if err != nil {
			return 0
		}
		r = f
	default:
		return 0
	}
	if r < 0 || r != r { // r != r catches NaN
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// normalizeBrand falls back to recovering a brand token from the title
// when the source gave none, skipping generic leading words.
func normalizeBrand(brand, title string) string {
	brand = strings.TrimSpace(brand)
	if brand != "" && brand != "Generic" && brand != "Unknown" {
		return brand
	}
	words := strings.Fields(title)
	for i := 0; i < len(words) && i < 3; i++ {
		w := words[i]
		if _, generic := genericBrandWords[strings.ToLower(w)]; generic || len(w) < 2 {
			continue
		}
		if cleaned := brandCleanRegexp.ReplaceAllString(w, ""); cleaned != "" {
			return cleaned
		}
	}
	if len(words) > 0 {
		return words[0]
	}
	return "Generic"
}
