package telemetry

import (
	"fmt"
	"log/slog"
	"slices"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkGrowthBreakthrough BookmarkType = "growth_breakthrough"
	BookmarkPopulationRecovery BookmarkType = "population_recovery"
	BookmarkPopulationCrash    BookmarkType = "population_crash"
	BookmarkStablePopulation   BookmarkType = "stable_population"
	BookmarkLineageMilestone   BookmarkType = "lineage_milestone"
)

// lineageStep is the generation gap between lineage milestones.
const lineageStep = 10

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPlantMin     int // minimum plant count in recent history
	recentPlantPeak    int // peak plant count in recent history
	stableWindowsCount int // consecutive windows with a steady population
	nextMilestone      int // next generation that triggers a lineage milestone
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable population detection
	}
	return &BookmarkDetector{
		history:        make([]WindowStats, historySize),
		historySize:    historySize,
		recentPlantMin: -1,
		nextMilestone:  lineageStep,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Growth breakthrough: growths > 2x rolling average
		if b := bd.checkGrowthBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Recovery: was ≤3 plants, now ≥3x that
		if b := bd.checkPopulationRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Crash: dropped >30% from recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		if b := bd.checkStablePopulation(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if b := bd.checkLineageMilestone(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if stats.Plants < bd.recentPlantMin || bd.recentPlantMin < 0 {
		bd.recentPlantMin = stats.Plants
	}
	if stats.Plants > bd.recentPlantPeak {
		bd.recentPlantPeak = stats.Plants
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return append(slices.Clone(bd.history[bd.historyIdx:]), bd.history[:bd.historyIdx]...)
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkGrowthBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Growths
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Growths) > avg*2.0 && stats.Growths >= 10 {
		return &Bookmark{
			Type:        BookmarkGrowthBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d growths is %.1fx average (%.1f)", stats.Growths, float64(stats.Growths)/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPopulationRecovery(stats WindowStats) *Bookmark {
	if bd.recentPlantMin < 0 || bd.recentPlantMin > 3 {
		return nil
	}

	threshold := max(bd.recentPlantMin*3, 6)
	if stats.Plants >= threshold {
		// Reset the minimum after triggering
		oldMin := bd.recentPlantMin
		bd.recentPlantMin = stats.Plants

		return &Bookmark{
			Type:        BookmarkPopulationRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Plant population recovered from %d to %d", oldMin, stats.Plants),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPlantPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Plants)/float64(bd.recentPlantPeak)
	if dropPercent > 0.30 && stats.Plants < bd.recentPlantPeak-5 {
		// Reset peak after crash
		oldPeak := bd.recentPlantPeak
		bd.recentPlantPeak = stats.Plants

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Plants crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Plants),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStablePopulation(stats WindowStats) *Bookmark {
	if stats.Plants < 5 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := make([]float64, 0, 4)
	for _, h := range history[len(history)-4:] {
		recent = append(recent, float64(h.Plants))
	}
	d := Summarize(recent)

	// Coefficient of variation < 20%
	if d.Mean > 0 && d.Std/d.Mean < 0.2 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable population of about %d plants over 5+ windows", stats.Plants),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkLineageMilestone(stats WindowStats) *Bookmark {
	if stats.MaxGeneration < bd.nextMilestone {
		return nil
	}
	reached := stats.MaxGeneration / lineageStep * lineageStep
	bd.nextMilestone = reached + lineageStep
	return &Bookmark{
		Type:        BookmarkLineageMilestone,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("A lineage reached generation %d", reached),
	}
}
