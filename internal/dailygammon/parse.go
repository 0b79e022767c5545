package dailygammon

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mboeker/gammonsync/internal/league"
)

var (
	userHrefRe   = regexp.MustCompile(`/bg/user/(\d+)`)
	matchHrefRe  = regexp.MustCompile(`/bg/game/(\d+)/0/`)
	exportHrefRe = regexp.MustCompile(`/bg/export/\d+`)

	// scoreRe matches the "<name> : <score>" text a match page renders in
	// each player's header cell.
	scoreRe = regexp.MustCompile(`^(.+?)\s*:\s*(\d+)`)
)

// winsOffset is the character position separating the two move columns of an
// export transcript. A "Wins" token starting left of it sits in the page
// owner's column.
const winsOffset = 24

// ParseSeasonMatches extracts the match rows for one season from a user page.
// A row qualifies when its text carries the season tag and it links both an
// opponent and a match.
func ParseSeasonMatches(r io.Reader, seasonTag string) ([]SeasonMatch, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var matches []SeasonMatch
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if !strings.Contains(row.Text(), seasonTag) {
			return
		}

		var m SeasonMatch
		var haveOpponent, haveMatch bool
		row.Find("a").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			switch {
			case !haveOpponent && userHrefRe.MatchString(href):
				m.Opponent = strings.TrimSpace(a.Text())
				m.OpponentID = userHrefRe.FindStringSubmatch(href)[1]
				haveOpponent = true
			case !haveMatch && matchHrefRe.MatchString(href):
				id, err := strconv.Atoi(matchHrefRe.FindStringSubmatch(href)[1])
				if err != nil {
					return
				}
				m.MatchID = league.MatchID(id)
				haveMatch = true
			case exportHrefRe.MatchString(href):
				m.Exportable = true
			}
		})

		if haveOpponent && haveMatch {
			matches = append(matches, m)
		}
	})
	return matches, nil
}

// ExtractLatestScore finds the most recent score line on a match page. Table
// rows are scanned bottom-up; a row qualifies when it mentions one of the
// candidate names and its second and third cells both carry a
// "<name> : <score>" pair. Returns false when no row qualifies.
func ExtractLatestScore(html string, candidates []string) (league.ScoreLine, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return league.ScoreLine{}, false
	}

	rows := doc.Find("tr")
	for i := rows.Length() - 1; i >= 0; i-- {
		row := rows.Eq(i)
		if !containsAny(row.Text(), candidates) {
			continue
		}

		cells := row.Find("td")
		if cells.Length() < 3 {
			continue
		}
		left := scoreRe.FindStringSubmatch(strings.TrimSpace(cells.Eq(1).Text()))
		right := scoreRe.FindStringSubmatch(strings.TrimSpace(cells.Eq(2).Text()))
		if left == nil || right == nil {
			continue
		}

		leftScore, lerr := strconv.Atoi(left[2])
		rightScore, rerr := strconv.Atoi(right[2])
		if lerr != nil || rerr != nil {
			continue
		}
		return league.ScoreLine{
			LeftName:  strings.TrimSpace(left[1]),
			RightName: strings.TrimSpace(right[1]),
			Left:      leftScore,
			Right:     rightScore,
		}, true
	}
	return league.ScoreLine{}, false
}

// DecideWinner scans an export transcript for the line announcing the match
// result and attributes it to the page owner or the opponent by the column
// the "Wins" token starts in. Returns false when the transcript has no such
// line, which means the match is still running.
func DecideWinner(lines []string, owner, opponent string) (string, bool) {
	for _, line := range lines {
		if !strings.Contains(line, "and the match") || !strings.Contains(line, "Wins") {
			continue
		}
		if strings.Index(line, "Wins") < winsOffset {
			return owner, true
		}
		return opponent, true
	}
	return "", false
}

func containsAny(text string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(text, c) {
			return true
		}
	}
	return false
}
