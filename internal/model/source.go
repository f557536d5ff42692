package model

// Source is a single retrieved web source. Index is the 1-based position
// in the registry and determines the source's citation marker [index].
// Indices are assigned positionally and never renumbered mid-pipeline.
type Source struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ScrapedCorpus maps a source URL to its extracted plain text. An empty
// string is a valid entry and signals a scrape failure for that URL.
type ScrapedCorpus map[string]string

// Text returns the scraped text for a URL, or "" if none was captured.
func (c ScrapedCorpus) Text(url string) string {
	return c[url]
}
