package server

import (
	"sort"
	"sync"

	"github.com/lox/showdown/internal/game"
)

// TableStats accumulates results of finished hands
type TableStats struct {
	mu         sync.RWMutex
	completed  int
	aborted    int
	draws      int
	totalPot   int
	biggestPot int
	wins       map[string]int
	categories map[string]int
}

// NewTableStats creates an empty collector
func NewTableStats() *TableStats {
	return &TableStats{
		wins:       make(map[string]int),
		categories: make(map[string]int),
	}
}

// Record folds one finished hand into the totals
func (s *TableStats) Record(e game.GameEndedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Aborted {
		s.aborted++
		return
	}

	s.completed++
	s.totalPot += e.Pot
	if e.Pot > s.biggestPot {
		s.biggestPot = e.Pot
	}
	if e.Draw {
		s.draws++
	} else if e.WinnerName != "" {
		s.wins[e.WinnerName]++
	}
	for _, h := range e.Hands {
		s.categories[h.Result.Category.String()]++
	}
}

// PlayerWins is a row in the wins table
type PlayerWins struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// StatsSummary is the JSON view served on /stats
type StatsSummary struct {
	HandsCompleted int            `json:"handsCompleted"`
	HandsAborted   int            `json:"handsAborted"`
	Draws          int            `json:"draws"`
	TotalPot       int            `json:"totalPot"`
	AveragePot     float64        `json:"averagePot"`
	BiggestPot     int            `json:"biggestPot"`
	Leaders        []PlayerWins   `json:"leaders"`
	Categories     map[string]int `json:"categories"`
}

// Summary returns a snapshot of the totals. Leaders are ordered by wins,
// then name.
func (s *TableStats) Summary() StatsSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := StatsSummary{
		HandsCompleted: s.completed,
		HandsAborted:   s.aborted,
		Draws:          s.draws,
		TotalPot:       s.totalPot,
		BiggestPot:     s.biggestPot,
		Leaders:        make([]PlayerWins, 0, len(s.wins)),
		Categories:     make(map[string]int, len(s.categories)),
	}
	if s.completed > 0 {
		summary.AveragePot = float64(s.totalPot) / float64(s.completed)
	}
	for name, wins := range s.wins {
		summary.Leaders = append(summary.Leaders, PlayerWins{Name: name, Wins: wins})
	}
	sort.Slice(summary.Leaders, func(i, j int) bool {
		if summary.Leaders[i].Wins != summary.Leaders[j].Wins {
			return summary.Leaders[i].Wins > summary.Leaders[j].Wins
		}
		return summary.Leaders[i].Name < summary.Leaders[j].Name
	})
	for category, n := range s.categories {
		summary.Categories[category] = n
	}
	return summary
}
