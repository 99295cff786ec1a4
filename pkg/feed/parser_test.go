package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>http://example.com/article1</guid>
		<author>test@example.com (Test Author)</author>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<description>Article 2 description</description>
		<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
	</item>
</channel>
</rss>`

	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA, gotAccept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "TestAgent/1.0")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "TestAgent/1.0", gotUA)
	assert.Contains(t, gotAccept, "application/rss+xml")
	assert.Equal(t, "Test Feed", feed.Title)
	assert.Equal(t, "http://example.com", feed.Link)
	require.Len(t, feed.Items, 2)

	item1 := feed.Items[0]
	assert.Equal(t, "Test Article 1", item1.Title)
	assert.Equal(t, "http://example.com/article1", item1.Link)
	assert.Equal(t, "Article 1 description", item1.Description)
	assert.Equal(t, "http://example.com/article1", item1.GUID)
	assert.Equal(t, "Test Author", item1.Author)
	assert.Equal(t, time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), item1.Published.UTC())

	// guid falls back to link
	item2 := feed.Items[1]
	assert.Equal(t, "http://example.com/article2", item2.GUID)
}

func TestParser_Parse_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
		<author><name>John Doe</name></author>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	feed, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Atom Feed", feed.Title)
	require.Len(t, feed.Items, 1)
	item := feed.Items[0]
	assert.Equal(t, "Atom Entry 1", item.Title)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", item.GUID)
	assert.Equal(t, "John Doe", item.Author)
	// updated used when published is missing
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), item.Published.UTC())
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("invalid feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not a feed"))
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewParser(5*time.Second, "").Parse(ctx, server.URL)
		require.Error(t, err)
	})
}
