package roomstore

import (
	"sort"
	"sync"

	"dormhub/internal/dispatch"
	"dormhub/internal/domain"

	"go.uber.org/zap"
)

// Store is the process-wide in-memory mirror of the rooms collection, shared
// by every view of the data. It is constructed once at startup and injected;
// the external document store stays the source of truth and callers push
// updates here after each successful remote write.
//
// Mutations are serialized through the dispatch loop, so observers always see
// a consistent cache and are notified on the loop goroutine. Reads return
// snapshots and are safe from any goroutine.
type Store struct {
	loop   *dispatch.Loop
	logger *zap.Logger

	mu      sync.RWMutex
	rooms   map[string]domain.Room
	subs    map[int]func()
	nextSub int
}

func New(loop *dispatch.Loop, logger *zap.Logger) *Store {
	return &Store{
		loop:   loop,
		logger: logger,
		rooms:  map[string]domain.Room{},
		subs:   map[int]func(){},
	}
}

// ReplaceAll swaps the entire cached collection. Observers are notified once.
func (s *Store) ReplaceAll(rooms []domain.Room) {
	s.loop.Post(func() {
		s.mu.Lock()
		s.rooms = make(map[string]domain.Room, len(rooms))
		for _, r := range rooms {
			s.rooms[r.ID] = r
		}
		s.mu.Unlock()
		s.notify()
	})
}

// Upsert inserts or replaces one room by id.
func (s *Store) Upsert(room domain.Room) {
	if room.ID == "" {
		return
	}
	s.loop.Post(func() {
		s.mu.Lock()
		s.rooms[room.ID] = room
		s.mu.Unlock()
		s.notify()
	})
}

// RemoveByID drops a room from the cache. Removing an absent id is a no-op
// and observers are not notified.
func (s *Store) RemoveByID(id string) {
	if id == "" {
		return
	}
	s.loop.Post(func() {
		s.mu.Lock()
		_, ok := s.rooms[id]
		if ok {
			delete(s.rooms, id)
		}
		s.mu.Unlock()
		if ok {
			s.notify()
		}
	})
}

// Get returns one cached room by id.
func (s *Store) Get(id string) (domain.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// All returns a snapshot of every cached room, ordered by building then
// room number.
func (s *Store) All() []domain.Room {
	s.mu.RLock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sortRooms(out)
	return out
}

// ByBuilding returns a snapshot of the rooms in one building at call time.
// An empty building id matches nothing.
func (s *Store) ByBuilding(buildingID string) []domain.Room {
	out := []domain.Room{}
	if buildingID == "" {
		return out
	}
	s.mu.RLock()
	for _, r := range s.rooms {
		if r.BuildingID == buildingID {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()
	sortRooms(out)
	return out
}

// Subscribe registers an observer called after every cache change, on the
// dispatch loop goroutine. The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify runs on the loop goroutine.
func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

func sortRooms(rooms []domain.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].BuildingName != rooms[j].BuildingName {
			return rooms[i].BuildingName < rooms[j].BuildingName
		}
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
}
