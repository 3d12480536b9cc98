// Package scraper provides HTTP fetching and HTML parsing for ESPN WNBA pages.
//
// The scraper package fetches the daily scoreboard to discover game IDs and
// each game's box score page to read its quarter-by-quarter line score. Page
// structure rules (the game link class and the positional line-score table)
// live behind the Layout interface so they can change without touching the
// fetch logic.
package scraper
