package scraper

// Strategy is one locator attempt in an ordered fallback list. Strategies
// are tried in order with a bounded wait each; the first one whose target
// becomes clickable wins, and exhausting the list is a soft degradation
// rather than an error.
type Strategy struct {
	Name  string
	XPath string
}

// consentStrategies dismiss the cookie consent banner. Exact Cookiebot
// widget IDs come first (common on Dutch sites), then case-insensitive
// text matches in both languages, then generic class matches.
var consentStrategies = []Strategy{
	{Name: "cookiebot-optin-all-link", XPath: "//a[@id='CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll']"},
	{Name: "cookiebot-accept-link", XPath: "//a[@id='CybotCookiebotDialogBodyButtonAccept']"},
	{Name: "cookiebot-optin-all-button", XPath: "//button[@id='CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll']"},
	{Name: "cookiebot-accept-button", XPath: "//button[@id='CybotCookiebotDialogBodyButtonAccept']"},
	{Name: "button-text-accept", XPath: "//button[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'accept')]"},
	{Name: "button-text-accepteren", XPath: "//button[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'accepteren')]"},
	{Name: "link-text-accept", XPath: "//a[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'accept')]"},
	{Name: "link-text-accepteren", XPath: "//a[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'accepteren')]"},
	{Name: "button-class-accept", XPath: "//button[contains(@class, 'accept')]"},
	{Name: "link-class-accept", XPath: "//a[contains(@class, 'accept')]"},
}

// upcomingTabStrategies activate the upcoming-tournaments tab.
var upcomingTabStrategies = []Strategy{
	{Name: "tab-href-upcoming", XPath: "//a[contains(@href, '#TabUpcoming')]"},
	{Name: "tab-text-upcoming", XPath: "//button[contains(text(), 'Upcoming')]"},
	{Name: "tab-text-komende", XPath: "//a[contains(text(), 'Komende')]"},
}

// recentTabStrategies activate the recent-tournaments tab.
var recentTabStrategies = []Strategy{
	{Name: "tab-href-recent", XPath: "//a[contains(@href, '#TabRecent')]"},
	{Name: "tab-text-recent", XPath: "//button[contains(text(), 'Recent')]"},
	{Name: "tab-text-recente", XPath: "//a[contains(text(), 'Recente')]"},
}
