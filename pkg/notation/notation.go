// Package notation classifies and converts raw per-cell score tokens.
// A scorecard is written either in gross strokes or relative-to-par
// notation; the style is detected once from every token on the card and
// then applied uniformly. Mixed classification is not representable.
package notation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fairwaylab/scorelens/pkg/scorecard"
)

// Gross scores outside this range are treated as misreads.
const (
	minGrossScore = 1
	maxGrossScore = 20
)

var explicitRelative = regexp.MustCompile(`^[+-]\d+$`)

// Config holds the thresholds for the statistical relative-notation
// heuristic. The heuristic is a guess at intent, so the thresholds are
// tunable rather than fixed.
type Config struct {
	// MinSamples is the minimum number of valid numeric tokens required
	// before the statistical heuristic may fire.
	MinSamples int

	// MaxLowValue is the per-token ceiling: every numeric token must be
	// at or below it for the card to look relative.
	MaxLowValue int

	// MeanThreshold is the mean-score ceiling. Real gross scores this
	// low are statistically implausible.
	MeanThreshold float64
}

// DefaultConfig returns the standard heuristic thresholds.
func DefaultConfig() Config {
	return Config{
		MinSamples:    6,
		MaxLowValue:   3,
		MeanThreshold: 2.5,
	}
}

// Detection is the outcome of style detection for one whole scorecard.
type Detection struct {
	Style scorecard.NotationStyle

	// Heuristic is true when the statistical rule (not explicit +N/-N/E
	// syntax) decided the style. Cards accepted this way should be
	// flagged for optional human confirmation downstream.
	Heuristic bool
}

// Detect determines exactly one notation style for the entire token set.
//
// Priority order:
//  1. Any token with explicit relative syntax (+N, -N, E) makes the
//     whole card relative.
//  2. Otherwise, if at least cfg.MinSamples numeric tokens exist, all at
//     or below cfg.MaxLowValue with a mean under cfg.MeanThreshold, the
//     card is classified relative on statistical grounds.
//  3. Otherwise the card is gross.
func Detect(tokens []string, cfg Config) Detection {
	if cfg.MinSamples <= 0 {
		cfg = DefaultConfig()
	}

	var numeric []int
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if explicitRelative.MatchString(tok) || strings.EqualFold(tok, "e") {
			return Detection{Style: scorecard.NotationRelative}
		}
		if n, err := strconv.Atoi(tok); err == nil {
			numeric = append(numeric, n)
		}
	}

	if len(numeric) >= cfg.MinSamples {
		sum := 0
		allLow := true
		for _, n := range numeric {
			if n > cfg.MaxLowValue {
				allLow = false
				break
			}
			sum += n
		}
		if allLow && float64(sum)/float64(len(numeric)) < cfg.MeanThreshold {
			return Detection{Style: scorecard.NotationRelative, Heuristic: true}
		}
	}

	return Detection{Style: scorecard.NotationGross}
}

// Convert turns one raw token into a gross stroke count under the
// card-wide style, or nil when the token cannot be read as a score.
// A bad cell never produces an error; the pipeline tolerates and
// propagates nils.
//
// Under relative style a bare unsigned numeral is a magnitude over par
// ("1" at par 5 means 6 strokes), and a lone "0" or "E" means even par.
// Under gross style "0" is invalid: nobody takes zero strokes.
func Convert(token string, par int, style scorecard.NotationStyle) *int {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if style == scorecard.NotationRelative {
		return convertRelative(token, par)
	}
	return convertGross(token)
}

func convertRelative(token string, par int) *int {
	if strings.EqualFold(token, "e") || token == "0" {
		return scorecard.IntPtr(par)
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return nil
	}

	// Signed tokens are offsets from par; an unsigned numeral on a
	// relative card reads as strokes over par, never as gross strokes.
	score := par + n

	if score < minGrossScore {
		return nil
	}
	return scorecard.IntPtr(score)
}

func convertGross(token string) *int {
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil
	}
	if n < minGrossScore || n > maxGrossScore {
		return nil
	}
	return scorecard.IntPtr(n)
}
