package utils

// Cover image lookup for books created without an explicit cover URL.
// Two public catalogs are tried in order (Google Books, then
// OpenLibrary); when neither knows the ISBN, a deterministic stock
// image is derived from the title so the same book always renders the
// same cover.  Lookups are best effort: any network or decode failure
// falls through to the stock list.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// stockCovers are generic book-themed images used when no catalog has
// a cover for the ISBN.
var stockCovers = []string{
	"https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1541963463532-d68292c34b19?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1589829085413-56de8ae18c73?w=400&h=600&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1592496431122-2349e0fbc666?w=400&h=600&fit=crop&crop=center",
}

// DefaultCoverImage is used for books whose title is empty and whose
// ISBN is unknown to both catalogs.
var DefaultCoverImage = stockCovers[0]

var coverClient = &http.Client{Timeout: 5 * time.Second}

// CoverImageByTitle returns a stock cover chosen deterministically
// from the book title, so repeated creates of the same title agree.
func CoverImageByTitle(title string) string {
	if title == "" {
		return DefaultCoverImage
	}
	h := 0
	for _, r := range title {
		h = (h << 5) - h + int(r)
	}
	if h < 0 {
		h = -h
	}
	return stockCovers[h%len(stockCovers)]
}

// googleBooksCover queries the Google Books volumes API for the ISBN
// and returns the thumbnail URL, upscaled, or "" when absent.
func googleBooksCover(ctx context.Context, isbn string) string {
	url := fmt.Sprintf("https://www.googleapis.com/books/v1/volumes?q=isbn:%s", isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := coverClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var payload struct {
		Items []struct {
			VolumeInfo struct {
				ImageLinks struct {
					Thumbnail string `json:"thumbnail"`
				} `json:"imageLinks"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	if len(payload.Items) == 0 {
		return ""
	}
	thumb := payload.Items[0].VolumeInfo.ImageLinks.Thumbnail
	if thumb == "" {
		return ""
	}
	return strings.Replace(thumb, "zoom=1", "zoom=2", 1)
}

// openLibraryCover probes the OpenLibrary covers endpoint.  The
// endpoint returns 404 for unknown ISBNs when asked not to redirect to
// a placeholder.
func openLibraryCover(ctx context.Context, isbn string) string {
	url := fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg?default=false", isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := coverClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", isbn)
}

// BestCoverImage resolves a cover URL for a new book: Google Books
// first, OpenLibrary second, deterministic stock image last.  It never
// returns an empty string.
func BestCoverImage(ctx context.Context, isbn, title string) string {
	if isbn != "" {
		if url := googleBooksCover(ctx, isbn); url != "" {
			return url
		}
		if url := openLibraryCover(ctx, isbn); url != "" {
			return url
		}
	}
	return CoverImageByTitle(title)
}
