package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yt-viewer/internal/models"
)

// Persister saves and restores the namespaced state blob. Load returns nil
// data when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context, namespace string) ([]byte, error)
	Save(ctx context.Context, namespace string, data []byte) error
}

// Store holds the favorites list and the theme flag. Every mutation is
// written through to the Persister before it returns, and observers are
// notified with a copy of the new state.
type Store struct {
	// notifyMu orders mutations together with their notifications, so
	// observers see states in the order they were applied.
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     models.PersistedState
	persister Persister
	namespace string

	observers map[int]func(models.PersistedState)
	nextID    int
}

// DefaultState is used when nothing has been persisted yet.
func DefaultState() models.PersistedState {
	return models.PersistedState{
		Favorites: []models.Video{},
		DarkMode:  true,
	}
}

// Open restores the store saved under namespace. A blob that cannot be
// decoded is discarded in favour of the default state.
func Open(ctx context.Context, p Persister, namespace string) (*Store, error) {
	s := &Store{
		state:     DefaultState(),
		persister: p,
		namespace: namespace,
		observers: make(map[int]func(models.PersistedState)),
	}

	data, err := p.Load(ctx, namespace)
	if err != nil {
		return nil, errors.Wrap(err, "failed to restore state")
	}
	if data == nil {
		return s, nil
	}

	var restored models.PersistedState
	if err := json.Unmarshal(data, &restored); err != nil {
		logrus.WithError(err).WithField("namespace", namespace).Warn("discarding unreadable persisted state")
		return s, nil
	}
	if restored.Favorites == nil {
		restored.Favorites = []models.Video{}
	}
	s.state = restored

	logrus.WithFields(logrus.Fields{
		"namespace": namespace,
		"favorites": len(restored.Favorites),
		"dark_mode": restored.DarkMode,
	}).Info("restored persisted state")
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.PersistedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

func (s *Store) Favorites() []models.Video {
	return s.Snapshot().Favorites
}

func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DarkMode
}

// IsFavorite reports whether any favorite has the given id.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// AddToFavorites appends video and returns the favorites it produced. Adding
// a video that is already a favorite produces a second entry.
func (s *Store) AddToFavorites(ctx context.Context, video models.Video) ([]models.Video, error) {
	st, err := s.mutate(ctx, func(st *models.PersistedState) {
		st.Favorites = append(st.Favorites, video)
	})
	return st.Favorites, err
}

// RemoveFromFavorites removes every favorite whose id matches and returns the
// remaining favorites.
func (s *Store) RemoveFromFavorites(ctx context.Context, id string) ([]models.Video, error) {
	st, err := s.mutate(ctx, func(st *models.PersistedState) {
		st.Favorites = removeID(st.Favorites, id)
	})
	return st.Favorites, err
}

// ToggleFavorite removes video if it is a favorite and adds it otherwise. It
// reports whether the video is a favorite afterwards, along with the
// favorites the toggle produced.
func (s *Store) ToggleFavorite(ctx context.Context, video models.Video) (bool, []models.Video, error) {
	var added bool
	st, err := s.mutate(ctx, func(st *models.PersistedState) {
		for _, v := range st.Favorites {
			if v.ID == video.ID {
				st.Favorites = removeID(st.Favorites, video.ID)
				return
			}
		}
		st.Favorites = append(st.Favorites, video)
		added = true
	})
	return added, st.Favorites, err
}

// ToggleDarkMode flips the theme flag and returns its new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	st, err := s.mutate(ctx, func(st *models.PersistedState) {
		st.DarkMode = !st.DarkMode
	})
	return st.DarkMode, err
}

// Subscribe registers fn to receive the state after every mutation, in the
// order mutations are applied. fn may read the store but must not mutate it.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(models.PersistedState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// mutate applies fn, persists the result and notifies observers. It returns
// the state fn produced. The in-memory change stands even when persisting
// fails; the error is returned so the caller can report it.
func (s *Store) mutate(ctx context.Context, fn func(*models.PersistedState)) (models.PersistedState, error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snapshot := s.copyState()
	data, err := json.Marshal(snapshot)
	if err == nil {
		err = s.persister.Save(ctx, s.namespace, data)
	}
	observers := make([]func(models.PersistedState), 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(copyOf(snapshot))
	}

	if err != nil {
		logrus.WithError(err).WithField("namespace", s.namespace).Error("failed to persist state")
		return snapshot, errors.Wrap(err, "failed to persist state")
	}
	return snapshot, nil
}

func (s *Store) copyState() models.PersistedState {
	return copyOf(s.state)
}

func copyOf(st models.PersistedState) models.PersistedState {
	favorites := make([]models.Video, len(st.Favorites))
	copy(favorites, st.Favorites)
	return models.PersistedState{Favorites: favorites, DarkMode: st.DarkMode}
}

func (s *Store) indexOf(id string) int {
	for i, v := range s.state.Favorites {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func removeID(videos []models.Video, id string) []models.Video {
	kept := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	return kept
}
