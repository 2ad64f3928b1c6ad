package players

import (
	"log/slog"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/resolver"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

const defaultCacheSize = 1024

// Store exposes the current roster index.
type Store interface {
	Index() *roster.Index
}

// Options tunes a Service.
type Options struct {
	CacheSize int
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

// Service resolves player queries against the current roster. Results are
// cached per roster version, so a refreshed roster never serves stale matches.
type Service struct {
	store   Store
	cache   *lru.Cache[string, resolver.Result]
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, opts Options) *Service {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, resolver.Result](size)
	if err != nil {
		// only reachable with a non-positive size
		cache = nil
	}
	return &Service{
		store:   store,
		cache:   cache,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

// Index returns the current roster or roster.ErrNotLoaded.
func (s *Service) Index() (*roster.Index, error) {
	ix := s.store.Index()
	if ix == nil {
		return nil, roster.ErrNotLoaded
	}
	return ix, nil
}

// Resolve matches one query with an optional team hint against the current
// roster.
func (s *Service) Resolve(name, hint string) (resolver.Result, error) {
	ix, err := s.Index()
	if err != nil {
		return resolver.Result{}, err
	}
	return s.ResolveIn(ix, name, hint), nil
}

// ResolveIn matches against a pinned index so a batch sees one roster even
// if the store is refreshed mid-way.
func (s *Service) ResolveIn(ix *roster.Index, name, hint string) resolver.Result {
	key := cacheKey(ix.Version(), name, hint)
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			s.record(res)
			return res
		}
	}

	res := resolver.New(ix).Resolve(name, hint)
	if s.cache != nil {
		s.cache.Add(key, res)
	}
	s.record(res)
	logging.Debug(s.logger, "player resolved",
		logging.FieldQuery, name,
		logging.FieldTeamHint, hint,
		logging.FieldStrategy, res.Strategy,
		logging.FieldOutcome, string(res.Outcome()),
		logging.FieldCount, len(res.Players),
	)
	return res
}

// Filter narrows a player listing.
type Filter struct {
	Team     string
	Position players.Position
}

// Players lists roster players ordered by id, optionally filtered by team
// (name, short name or code) and position.
func (s *Service) Players(f Filter) ([]players.Player, error) {
	ix, err := s.Index()
	if err != nil {
		return nil, err
	}
	list := ix.Players()
	if f.Team != "" {
		list = resolver.FilterByTeam(list, f.Team)
	}
	if f.Position != "" {
		var filtered []players.Player
		for _, p := range list {
			if p.Position == f.Position {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// PlayerByID returns a single player if present.
func (s *Service) PlayerByID(id int) (players.Player, bool, error) {
	ix, err := s.Index()
	if err != nil {
		return players.Player{}, false, err
	}
	p, ok := ix.Player(id)
	return p, ok, nil
}

// CacheLen reports how many resolutions are cached.
func (s *Service) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}

func (s *Service) record(res resolver.Result) {
	s.metrics.RecordResolution(res.Strategy, string(res.Outcome()))
}

func cacheKey(version, name, hint string) string {
	return version + "\x00" + name + "\x00" + hint
}
