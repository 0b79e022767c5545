package league

import "fmt"

// SeasonTag builds the season marker DailyGammon uses in event names, e.g.
// "34th-season-4d". User-page rows are filtered by this string.
func SeasonTag(seasonNumber, leagueCode string) string {
	return fmt.Sprintf("%sth-season-%s", seasonNumber, leagueCode)
}
