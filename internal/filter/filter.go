// Package filter turns the query string of the user listing endpoint into a
// MongoDB filter document plus pagination.
package filter

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "team-builder-backend/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageSize is the fixed number of users per page
const PageSize = 20

const (
	keyPage   = "page"
	keyLimit  = "limit"
	keySearch = "search"
	keyDomain = "domain"
	keyGender = "gender"

	arraySuffix = "[]"
)

// UserQuery is the resolved listing request
type UserQuery struct {
	Filter   bson.M
	Page     int
	PageSize int
	// Empty is set for pages <= 0; such requests never reach the store
	Empty bool
}

// Skip returns the number of documents before the requested page
func (q *UserQuery) Skip() int64 {
	if q.Page <= 1 {
		return 0
	}
	return int64(q.Page-1) * int64(q.PageSize)
}

// PageCount returns ceil(total / page size)
func (q *UserQuery) PageCount(total int64) int {
	if total <= 0 || q.PageSize <= 0 {
		return 0
	}
	size := int64(q.PageSize)
	return int((total + size - 1) / size)
}

// BuildUserQuery converts the listing query parameters into a UserQuery.
//
// domain and gender follow the same two rules independently: an absent or empty
// value adds no constraint, a repeated (or "[]"-suffixed) value becomes a set
// membership filter, and a single value is capitalized and matched exactly.
// A non-empty search replaces the passthrough filters with a case-insensitive
// substring match on first or last name, keeping only the domain and gender
// constraints.
func BuildUserQuery(params url.Values) (*UserQuery, error) {
	page, err := parsePage(params)
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		return &UserQuery{Page: page, PageSize: PageSize, Empty: true}, nil
	}

	search, err := parseSearch(params)
	if err != nil {
		return nil, err
	}

	domain, hasDomain := dimension(params, keyDomain)
	gender, hasGender := dimension(params, keyGender)

	var filter bson.M
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{
			"$or": bson.A{
				bson.M{"first_name": pattern},
				bson.M{"last_name": pattern},
			},
		}
	} else {
		filter, err = passthrough(params)
		if err != nil {
			return nil, err
		}
	}

	if hasDomain {
		filter[keyDomain] = domain
	}
	if hasGender {
		filter[keyGender] = gender
	}

	return &UserQuery{Filter: filter, Page: page, PageSize: PageSize}, nil
}

// Capitalize upper-cases the first character and leaves the rest untouched
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func parsePage(params url.Values) (int, error) {
	raw := strings.TrimSpace(params.Get(keyPage))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(keyPage, "page must be an integer")
	}
	return page, nil
}

func parseSearch(params url.Values) (string, error) {
	values, ok := params[keySearch]
	if !ok || len(values) == 0 {
		return "", apperrors.ErrSearchRequired
	}
	if len(values) > 1 {
		return "", apperrors.NewValidationError(keySearch, "search must be a single value")
	}
	return values[0], nil
}

// dimension resolves one of the dual-shape keys (domain, gender).
func dimension(params url.Values, key string) (bson.M, bool) {
	single := params[key]
	array, isArray := params[key+arraySuffix]

	if isArray || len(single) > 1 {
		values := append(append([]string{}, single...), array...)
		return bson.M{"$in": values}, true
	}
	if len(single) == 0 || single[0] == "" {
		return nil, false
	}
	return bson.M{"$eq": Capitalize(single[0])}, true
}

func passthrough(params url.Values) (bson.M, error) {
	grouped := make(map[string][]string)
	arrays := make(map[string]bool)
	for rawKey, values := range params {
		key := strings.TrimSuffix(rawKey, arraySuffix)
		switch key {
		case keyPage, keyLimit, keySearch, keyDomain, keyGender:
			continue
		}
		if key != rawKey {
			arrays[key] = true
		}
		grouped[key] = append(grouped[key], values...)
	}

	filter := bson.M{}
	for key, values := range grouped {
		if err := validateKey(key); err != nil {
			return nil, err
		}

		cast := make([]interface{}, 0, len(values))
		for _, v := range values {
			c, err := castValue(key, v)
			if err != nil {
				return nil, err
			}
			cast = append(cast, c)
		}

		switch {
		case arrays[key] || len(cast) > 1:
			filter[key] = bson.M{"$in": cast}
		case len(cast) == 1:
			filter[key] = cast[0]
		}
	}
	return filter, nil
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "$") || strings.ContainsAny(key, ".[]") {
		return apperrors.NewValidationError(key, "unsupported filter key")
	}
	return nil
}

// castValue converts values for the typed user fields the way the schema stores them
func castValue(key, value string) (interface{}, error) {
	switch key {
	case "_id":
		oid, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			return nil, apperrors.NewValidationError(key, "must be a valid object id")
		}
		return oid, nil
	case "id":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, apperrors.NewValidationError(key, "must be an integer")
		}
		return n, nil
	case "available":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, apperrors.NewValidationError(key, "must be a boolean")
		}
		return b, nil
	}
	return value, nil
}
