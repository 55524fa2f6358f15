package cms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query builds the content API's query-string conventions: pagination[...],
// sort, populate and filters[field][$op]=value. The zero value is not usable;
// construct with NewQuery.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Page sets pagination[page].
func (q *Query) Page(n int) *Query {
	q.values.Set("pagination[page]", strconv.Itoa(n))
	return q
}

// PageSize sets pagination[pageSize].
func (q *Query) PageSize(n int) *Query {
	q.values.Set("pagination[pageSize]", strconv.Itoa(n))
	return q
}

// Limit sets pagination[limit].
func (q *Query) Limit(n int) *Query {
	q.values.Set("pagination[limit]", strconv.Itoa(n))
	return q
}

// Sort sets the sort key, e.g. "startDate:desc".
func (q *Query) Sort(key string) *Query {
	q.values.Set("sort", key)
	return q
}

// Populate controls relation population; "*" populates everything.
func (q *Query) Populate(relations string) *Query {
	q.values.Set("populate", relations)
	return q
}

// Eq adds an equality filter. The field may be a dotted path into a relation
// ("tags.slug" becomes filters[tags][slug][$eq]).
func (q *Query) Eq(field, value string) *Query {
	return q.filter(field, "$eq", value)
}

// ContainsI adds a case-insensitive substring filter.
func (q *Query) ContainsI(field, value string) *Query {
	return q.filter(field, "$containsi", value)
}

// Gte adds a greater-or-equal filter.
func (q *Query) Gte(field, value string) *Query {
	return q.filter(field, "$gte", value)
}

// Lte adds a less-or-equal filter.
func (q *Query) Lte(field, value string) *Query {
	return q.filter(field, "$lte", value)
}

// OrContainsI adds the n-th branch of a disjunction:
// filters[$or][n][field][$containsi]=value.
func (q *Query) OrContainsI(n int, field, value string) *Query {
	q.values.Set(fmt.Sprintf("filters[$or][%d][%s][$containsi]", n, field), value)
	return q
}

func (q *Query) filter(field, op, value string) *Query {
	var b strings.Builder
	b.WriteString("filters")
	for _, part := range strings.Split(field, ".") {
		b.WriteString("[" + part + "]")
	}
	b.WriteString("[" + op + "]")
	q.values.Set(b.String(), value)
	return q
}

// Encode renders the accumulated parameters as a query string.
func (q *Query) Encode() string {
	return q.values.Encode()
}
