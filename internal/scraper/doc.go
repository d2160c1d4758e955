// Package scraper drives a headless browser against the NTTB tournament
// calendar and parses the rendered markup into candidate tournament records.
//
// The driver half (driver.go) owns the browser session: it loads the page,
// dismisses the consent banner through an ordered list of locator strategies,
// switches between the upcoming and recent tabs, and scrolls until lazy-loaded
// content stops growing. The parser half (parse.go) is a pure function over
// rendered HTML and is tested against fixture snapshots without a browser.
package scraper
