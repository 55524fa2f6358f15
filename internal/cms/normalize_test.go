package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const mediaHost = "http://cms.local"

func decodeBody(t *testing.T, raw string) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

func TestNormalizeWrappedSingle(t *testing.T) {
	body := decodeBody(t, `{"data": {"id": 7, "attributes": {"title": "Club Night", "rating": 1850}}}`)

	one, list, isList := Normalize(body, mediaHost)
	require.False(t, isList)
	require.Nil(t, list)

	require.EqualValues(t, 7, one.ID())
	require.Equal(t, "Club Night", one.String("title"))
	require.EqualValues(t, 1850, one.Int("rating"))
	_, hasAttrs := one["attributes"]
	require.False(t, hasAttrs, "attributes must be merged away")
}

func TestNormalizeFlatSingleUnchanged(t *testing.T) {
	body := decodeBody(t, `{"data": {"id": 3, "title": "Open House", "featured": true}}`)

	one, _, isList := Normalize(body, mediaHost)
	require.False(t, isList)
	require.EqualValues(t, 3, one.ID())
	require.Equal(t, "Open House", one.String("title"))
	require.True(t, one.Bool("featured"))
}

func TestNormalizeListPreservesOrder(t *testing.T) {
	body := decodeBody(t, `{"data": [
		{"id": 1, "attributes": {"title": "first"}},
		{"id": 2, "title": "second"},
		{"id": 3, "attributes": {"title": "third"}}
	]}`)

	_, list, isList := Normalize(body, mediaHost)
	require.True(t, isList)
	require.Len(t, list, 3)
	for i, want := range []string{"first", "second", "third"} {
		require.Equal(t, want, list[i].String("title"))
		require.EqualValues(t, i+1, list[i].ID())
	}
}

func TestNormalizeMissingData(t *testing.T) {
	one, list, isList := Normalize(decodeBody(t, `{"meta": {}}`), mediaHost)
	require.Nil(t, one)
	require.Nil(t, list)
	require.False(t, isList)

	one, list, isList = Normalize(nil, mediaHost)
	require.Nil(t, one)
	require.Nil(t, list)
	require.False(t, isList)
}

func TestNormalizeWrappedMediaRelation(t *testing.T) {
	body := decodeBody(t, `{"data": {"id": 1, "attributes": {
		"title": "Spring Rapid",
		"coverImage": {"data": {"id": 9, "attributes": {"url": "/uploads/x.png", "caption": "board"}}}
	}}}`)

	one, _, _ := Normalize(body, mediaHost)
	img := one.Record("coverImage")
	require.NotNil(t, img)
	require.EqualValues(t, 9, img.ID())
	require.Equal(t, mediaHost+"/uploads/x.png", img.String("url"))
	require.Equal(t, "board", img.String("caption"))
}

func TestNormalizeWrappedToManyRelation(t *testing.T) {
	body := decodeBody(t, `{"data": {"id": 1, "attributes": {
		"gallery": {"data": [
			{"id": 1, "attributes": {"url": "/uploads/a.png"}},
			{"id": 2, "attributes": {"url": "http://elsewhere/b.png"}}
		]}
	}}}`)

	one, _, _ := Normalize(body, mediaHost)
	gallery := one.Records("gallery")
	require.Len(t, gallery, 2)
	require.Equal(t, mediaHost+"/uploads/a.png", gallery[0].String("url"))
	require.Equal(t, "http://elsewhere/b.png", gallery[1].String("url"), "absolute urls pass through")
}

func TestNormalizeFlatMediaObject(t *testing.T) {
	body := decodeBody(t, `{"data": {"id": 4,
		"photo": {"id": 2, "url": "/uploads/p.jpg", "alternativeText": "portrait"},
		"clips": [{"id": 5, "url": "/uploads/c.mp3"}, {"id": 6, "url": "http://cdn/d.mp3"}]
	}}`)

	one, _, _ := Normalize(body, mediaHost)
	photo := one.Record("photo")
	require.Equal(t, mediaHost+"/uploads/p.jpg", photo.String("url"))
	require.Equal(t, "portrait", photo.String("alternativeText"))

	clips := one.Records("clips")
	require.Len(t, clips, 2)
	require.Equal(t, mediaHost+"/uploads/c.mp3", clips[0].String("url"))
	require.Equal(t, "http://cdn/d.mp3", clips[1].String("url"))
}

func TestNormalizeLeavesScalarsAndNullRelations(t *testing.T) {
	body := decodeBody(t, `{"data": {"id": 4,
		"count": 12,
		"tags": ["a", "b"],
		"emptyRelation": {"data": null}
	}}`)

	one, _, _ := Normalize(body, mediaHost)
	require.EqualValues(t, 12, one.Int("count"))
	require.Equal(t, []any{"a", "b"}, one["tags"])
	require.NotNil(t, one["emptyRelation"], "null relation envelope passes through")
}

func TestResolveMediaURL(t *testing.T) {
	require.Equal(t, "", ResolveMediaURL(mediaHost, ""))
	require.Equal(t, "http://a/b", ResolveMediaURL(mediaHost, "http://a/b"))
	require.Equal(t, "https://a/b", ResolveMediaURL(mediaHost, "https://a/b"))
	require.Equal(t, mediaHost+"/uploads/x.png", ResolveMediaURL(mediaHost, "/uploads/x.png"))
}
