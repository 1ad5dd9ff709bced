package seo

import (
	"encoding/xml"
	"fmt"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlEntry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type sitemapRef struct {
	XMLName xml.Name `xml:"sitemap"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// RenderURLSet serializes URLs as a sitemap urlset document with one static
// changefreq/priority pair for every entry.
func RenderURLSet(urls []string, changefreq, priority string) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNS, URLs: make([]urlEntry, 0, len(urls))}
	for _, u := range urls {
		set.URLs = append(set.URLs, urlEntry{Loc: u, ChangeFreq: changefreq, Priority: priority})
	}

	b, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal urlset: %w", err)
	}
	return append([]byte(xml.Header), b...), nil
}

// RenderIndex serializes a sitemap index; every entry carries today's date
// as lastmod.
func RenderIndex(locs []string, now time.Time) ([]byte, error) {
	day := now.UTC().Format("2006-01-02")
	idx := sitemapIndex{Xmlns: sitemapNS, Sitemaps: make([]sitemapRef, 0, len(locs))}
	for _, loc := range locs {
		idx.Sitemaps = append(idx.Sitemaps, sitemapRef{Loc: loc, LastMod: day})
	}

	b, err := xml.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemapindex: %w", err)
	}
	return append([]byte(xml.Header), b...), nil
}
