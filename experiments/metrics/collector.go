package metrics

import (
	"time"
)

type SearchMetric struct {
	Searcher     string
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	Size         int // Transposition table entries or tree nodes when the search finished
	Pruned       int // Table entries pruned after committing the move
}

type MoveMetric struct {
	Step   int
	Player int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Reporter is implemented by players that measure their own decisions
type Reporter interface {
	LastMetric() SearchMetric
}

// Collector gathers the metrics of one decision. Searches are single threaded so a collector
// is never shared between goroutines.
type Collector interface {
	Start(searcher string)
	AddEpisode()
	AddFullPlayout()
	SetSize(size int)
	SetPruned(pruned int)
	Complete() SearchMetric
}

type collector struct {
	searcher     string
	startTime    time.Time
	episodes     int
	fullPlayouts int
	size         int
	pruned       int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(searcher string) {
	*m = collector{searcher: searcher, startTime: time.Now()}
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) SetSize(size int) {
	m.size = size
}

func (m *collector) SetPruned(pruned int) {
	m.pruned = pruned
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Searcher:     m.searcher,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		Size:         m.size,
		Pruned:       m.pruned,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(searcher string)  {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) SetSize(size int)       {}
func (m *dummyCollector) SetPruned(pruned int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
