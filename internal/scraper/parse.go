package scraper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/tournament"
)

// registrationKeywords mark a link as a registration link; the source
// mixes Dutch and English labels.
var registrationKeywords = []string{"inschrijv", "register", "aanmeld", "sign up"}

// closedKeywords override a registration link to unavailable.
var closedKeywords = []string{"gesloten", "closed", "vol", "full"}

// Parse extracts candidate tournaments from a rendered page snapshot for
// one origin tab. It is a pure function over the markup: elements without
// a title, consent-widget fragments (anything holding a checkbox or with
// "cookie" in the leading text), and advertisement containers are
// rejected; a malformed element is skipped without aborting the rest.
func Parse(r io.Reader, originTab, baseURL string, now time.Time) ([]*tournament.Tournament, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	items := doc.Find("li.list__item")
	candidates := make([]*tournament.Tournament, 0, items.Length())

	items.Each(func(i int, sel *goquery.Selection) {
		if !isCandidate(sel) {
			return
		}

		t := extractTournament(sel, len(candidates), originTab, baseURL, now)
		if t == nil || !t.Valid() {
			logger.Warn("Skipping malformed tournament element", logger.Fields{
				"tab":   originTab,
				"index": i,
			})
			return
		}
		candidates = append(candidates, t)
	})

	logger.Info("Parsed tournament elements", logger.Fields{
		"tab":        originTab,
		"elements":   items.Length(),
		"candidates": len(candidates),
	})

	return candidates, nil
}

// isCandidate applies the structural filter that separates tournament rows
// from consent widgets and advertisements.
func isCandidate(sel *goquery.Selection) bool {
	if sel.Find("h4.media__title").Length() == 0 {
		return false
	}
	if sel.Find("input[type=checkbox]").Length() > 0 {
		// Checkbox presence is the consent-widget tell.
		return false
	}
	if sel.Find("div.ad").Length() > 0 {
		return false
	}
	return !strings.Contains(leadingText(sel, 100), "cookie")
}

// leadingText returns the first n runes of the element's visible text,
// lowercased. Residual consent-banner fragments identify themselves early.
func leadingText(sel *goquery.Selection, n int) string {
	text := strings.ToLower(sel.Text())
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// extractTournament pulls the best-effort field set out of one candidate
// element. Every field except the name is optional.
func extractTournament(sel *goquery.Selection, index int, originTab, baseURL string, now time.Time) *tournament.Tournament {
	t := &tournament.Tournament{
		ID:               tournament.GenerateID(originTab, index, now),
		OriginTab:        originTab,
		ExtractionMethod: tournament.ExtractionMethod,
		ScrapedAt:        now,
		Active:           true,
	}

	title := sel.Find("h4.media__title").First()
	t.Name = strings.TrimSpace(title.Find("span.nav-link__value").First().Text())

	if href, ok := title.Find("a[href]").First().Attr("href"); ok {
		t.TournamentURL = resolveURL(baseURL, href)
		t.SourceID = sourceIDFromHref(href)
	}

	extractLocationAndDates(sel, t)
	t.Categories = extractCategories(sel)
	extractRegistration(sel, t, baseURL)

	t.Fingerprint = tournament.Fingerprint(t.Name, t.StartDate, t.Location)
	return t
}

// extractLocationAndDates reads the two media subheadings: the first holds
// a "SOURCE | LOCATION"-shaped label, the second one or two
// machine-readable time elements. One time element means a single-day
// tournament; two mean a date range.
func extractLocationAndDates(sel *goquery.Selection, t *tournament.Tournament) {
	subheadings := sel.Find("small.media__subheading")

	if subheadings.Length() >= 1 {
		locText := strings.TrimSpace(subheadings.Eq(0).Find("span.nav-link__value").First().Text())
		if idx := strings.Index(locText, "|"); idx >= 0 {
			t.Location = strings.TrimSpace(locText[idx+1:])
		} else {
			t.Location = locText
		}
	}

	if subheadings.Length() >= 2 {
		times := subheadings.Eq(1).Find("time[datetime]")
		switch {
		case times.Length() == 1:
			t.Date = strings.TrimSpace(times.Eq(0).Text())
			t.StartDate, _ = times.Eq(0).Attr("datetime")
		case times.Length() >= 2:
			first := strings.TrimSpace(times.Eq(0).Text())
			second := strings.TrimSpace(times.Eq(1).Text())
			t.Date = fmt.Sprintf("%s t/m %s", first, second)
			t.StartDate, _ = times.Eq(0).Attr("datetime")
			t.EndDate, _ = times.Eq(1).Attr("datetime")
		}
	}
}

// extractCategories collects tag-like labels from inline lists.
func extractCategories(sel *goquery.Selection) []string {
	var categories []string
	sel.Find("ul.list--inline").Each(func(_ int, list *goquery.Selection) {
		list.Find("span.tag, span.tag-duo").Each(func(_ int, tag *goquery.Selection) {
			text := strings.TrimSpace(tag.Text())
			if len(text) > 1 {
				categories = append(categories, text)
			}
		})
	})
	return categories
}

// extractRegistration scans the candidate's links for a registration
// label; the first match wins. A closed keyword in the same link's text
// overrides availability and records the closed status.
func extractRegistration(sel *goquery.Selection, t *tournament.Tournament, baseURL string) {
	sel.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		text := strings.ToLower(link.Text())
		if !containsAny(text, registrationKeywords) {
			return true
		}

		t.RegistrationAvailable = true
		if href, ok := link.Attr("href"); ok {
			switch {
			case strings.HasPrefix(href, "/"):
				t.RegistrationURL = baseURL + href
			case strings.HasPrefix(href, "http"):
				t.RegistrationURL = href
			}
		}

		if containsAny(text, closedKeywords) {
			t.RegistrationStatus = tournament.StatusClosed
			t.RegistrationAvailable = false
		}
		return false
	})
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func resolveURL(baseURL, href string) string {
	if strings.HasPrefix(href, "/") {
		return baseURL + href
	}
	return href
}

// sourceIDFromHref pulls the source's own tournament identifier out of an
// "id=" query parameter, best effort.
func sourceIDFromHref(href string) string {
	idx := strings.Index(href, "id=")
	if idx < 0 {
		return ""
	}
	id := href[idx+len("id="):]
	if amp := strings.Index(id, "&"); amp >= 0 {
		id = id[:amp]
	}
	return id
}
