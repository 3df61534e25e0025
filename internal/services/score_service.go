package services

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"chronicle/internal/models"
)

// Scoring weights. The significance heuristic favors user-visible change
// kinds, then rewards descriptive subjects, an explanatory body, and the
// size of the touched file set.
const (
	weightFeature  = 30
	weightFix      = 26
	weightPerf     = 22
	weightRefactor = 14
	weightDocLike  = 8
	weightChore    = 4
	weightNoPrefix = 12

	bodyBonus    = 8
	noisePenalty = 10

	// DefaultCap bounds how many commits reach the prompt.
	DefaultCap = 30

	// keepAllThreshold: with this few commits there is no prompt-size
	// pressure, so noise commits are deprioritized instead of dropped.
	keepAllThreshold = 3
)

var (
	conventionalPrefix = regexp.MustCompile(`^(feat|fix|perf|refactor|docs|test|build|ci|chore|style)(\([^)]*\))?!?:\s*`)

	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^merge (branch|pull request|remote)`),
		regexp.MustCompile(`(?i)^(chore(\([^)]*\))?:\s*)?(bump|release)\b.*\b(version|v?\d+(\.\d+)+)`),
		regexp.MustCompile(`(?i)^(chore(\([^)]*\))?:\s*)?v?\d+(\.\d+)+$`),
		regexp.MustCompile(`(?i)^(style(\([^)]*\))?:\s*)?(fix (formatting|lint|whitespace)|formatting( only)?|gofmt|go fmt|lint fixes?|whitespace)$`),
	}
)

// ScoreService turns fetched commits into a scored, ordered, capped
// sequence ready for prompt assembly. It never fails on well-formed input;
// malformed records are skipped with a warning.
type ScoreService struct {
	cap int
}

// NewScoreService builds a preprocessor keeping at most capN commits.
// capN <= 0 selects DefaultCap.
func NewScoreService(capN int) *ScoreService {
	if capN <= 0 {
		capN = DefaultCap
	}
	return &ScoreService{cap: capN}
}

// Cap returns the configured truncation cap.
func (s *ScoreService) Cap() int { return s.cap }

// Preprocess filters noise commits, scores the remainder and returns them in
// descending score order (recency breaks ties), truncated to the cap.
//
// Two guarantees hold for non-empty input: the output is never empty (if
// filtering removes everything the unfiltered list is scored instead), and
// every output hash comes from the input.
func (s *ScoreService) Preprocess(commits []models.CommitRecord) []models.ScoredCommit {
	valid := make([]models.CommitRecord, 0, len(commits))
	for _, c := range commits {
		if c.Hash == "" || c.Subject == "" {
			log.Printf("warning: skipping malformed commit record (hash=%q subject=%q)", c.Hash, c.Subject)
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return nil
	}

	keepNoise := len(valid) <= keepAllThreshold
	kept := make([]models.CommitRecord, 0, len(valid))
	for _, c := range valid {
		if !keepNoise && isNoise(c.Subject) {
			continue
		}
		kept = append(kept, c)
	}
	// Fallback: an all-noise history still deserves a changelog input.
	if len(kept) == 0 {
		kept = valid
	}

	scored := make([]models.ScoredCommit, 0, len(kept))
	for _, c := range kept {
		scored = append(scored, models.ScoredCommit{
			CommitRecord: c,
			Score:        scoreCommit(c),
			Category:     Categorize(c.Subject),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Date.After(scored[j].Date)
	})

	if len(scored) > s.cap {
		scored = scored[:s.cap]
	}
	return scored
}

// Categorize derives the conventional-commit category from a subject line.
func Categorize(subject string) models.CommitCategory {
	m := conventionalPrefix.FindStringSubmatch(strings.TrimSpace(subject))
	if m == nil {
		return models.CategoryNone
	}
	return models.CommitCategory(m[1])
}

func isNoise(subject string) bool {
	subject = strings.TrimSpace(subject)
	for _, p := range noisePatterns {
		if p.MatchString(subject) {
			return true
		}
	}
	return false
}

func scoreCommit(c models.CommitRecord) int {
	score := prefixWeight(Categorize(c.Subject))
	score += subjectSpecificity(c.Subject)
	if strings.TrimSpace(c.Body) != "" {
		score += bodyBonus
	}
	score += filesWeight(c.FilesChanged)
	if isNoise(c.Subject) {
		score -= noisePenalty
	}
	return score
}

func prefixWeight(cat models.CommitCategory) int {
	switch cat {
	case models.CategoryFeature:
		return weightFeature
	case models.CategoryFix:
		return weightFix
	case models.CategoryPerf:
		return weightPerf
	case models.CategoryRefactor:
		return weightRefactor
	case models.CategoryDocs, models.CategoryTest, models.CategoryBuild, models.CategoryCI:
		return weightDocLike
	case models.CategoryChore, models.CategoryStyle:
		return weightChore
	default:
		return weightNoPrefix
	}
}

// subjectSpecificity rewards descriptive subjects. Very short subjects carry
// little signal and score nothing.
func subjectSpecificity(subject string) int {
	n := len(strings.TrimSpace(subject))
	switch {
	case n >= 60:
		return 10
	case n >= 40:
		return 8
	case n >= 25:
		return 6
	case n >= 12:
		return 4
	default:
		return 0
	}
}

func filesWeight(n int) int {
	switch {
	case n > 20:
		return 10
	case n > 10:
		return 8
	case n > 5:
		return 6
	case n > 2:
		return 4
	case n > 0:
		return 2
	default:
		return 0
	}
}
