package stogieclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const DefaultRequestTimeout = 10 * time.Second

var (
	ErrClosed      = errors.New("stogieclient: feed cache closed")
	ErrUnknownPost = errors.New("stogieclient: post not in feed")
)

// Backend is the part of the API the cache needs. *Client implements it.
type Backend interface {
	Feed(ctx context.Context, filter string, page int) ([]FeedItem, error)
	ToggleLike(ctx context.Context, postID uuid.UUID) (LikeResult, error)
}

type ItemState int

const (
	StateSynced ItemState = iota
	StatePending
	StateRolledBack
)

func (s ItemState) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StatePending:
		return "pending"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

type entry struct {
	shown     FeedItem
	confirmed LikeResult
	desired   bool
	inFlight  bool
	state     ItemState
}

// FeedCache holds one feed in memory and applies like taps optimistically.
// Each item runs Synced -> Pending -> Synced | RolledBack. At most one toggle per item
// is in flight; taps during it only move the desired state, and when the answer
// disagrees with that state exactly one follow-up toggle is sent.
type FeedCache struct {
	backend Backend
	timeout time.Duration

	onError  func(postID uuid.UUID, err error)
	onChange func(item FeedItem, state ItemState)

	mu      sync.Mutex
	filter  string
	order   []uuid.UUID
	entries map[uuid.UUID]*entry
	closed  bool
	seq     uint64

	// notifyMu serialises onChange; delivered holds the last seq handed out per post.
	notifyMu  sync.Mutex
	delivered map[uuid.UUID]uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*FeedCache)

// WithRequestTimeout bounds every backend call (DefaultRequestTimeout otherwise).
func WithRequestTimeout(d time.Duration) Option {
	return func(fc *FeedCache) {
		if d > 0 {
			fc.timeout = d
		}
	}
}

// WithOnError is called when a toggle fails and the item was rolled back.
func WithOnError(fn func(postID uuid.UUID, err error)) Option {
	return func(fc *FeedCache) { fc.onError = fn }
}

// WithOnChange is called after every visible change to an item, in order per item.
// Notifications overtaken by a newer one are skipped. fn must not call Tap.
func WithOnChange(fn func(item FeedItem, state ItemState)) Option {
	return func(fc *FeedCache) { fc.onChange = fn }
}

func NewFeedCache(backend Backend, opts ...Option) *FeedCache {
	ctx, cancel := context.WithCancel(context.Background())
	fc := &FeedCache{
		backend:   backend,
		timeout:   DefaultRequestTimeout,
		entries:   map[uuid.UUID]*entry{},
		delivered: map[uuid.UUID]uint64{},
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(fc)
	}
	return fc
}

// Load replaces the feed with the server's first page. Items with a toggle in
// flight keep their optimistic view; that toggle's answer reconciles them.
func (fc *FeedCache) Load(ctx context.Context, filter string) error {
	if fc.isClosed() {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, fc.timeout)
	defer cancel()

	items, err := fc.backend.Feed(ctx, filter, 1)
	if err != nil {
		return err
	}

	fc.mu.Lock()
	if fc.closed {
		fc.mu.Unlock()
		return ErrClosed
	}
	fc.filter = filter
	fc.order = lo.Map(items, func(it FeedItem, _ int) uuid.UUID { return it.PostID })

	fresh := make(map[uuid.UUID]*entry, len(items))
	for _, it := range items {
		if old, ok := fc.entries[it.PostID]; ok && old.inFlight {
			fresh[it.PostID] = old
			continue
		}
		fresh[it.PostID] = &entry{
			shown:     it,
			confirmed: LikeResult{Liked: it.LikedByMe, LikeCount: it.LikeCount},
			desired:   it.LikedByMe,
			state:     StateSynced,
		}
	}
	for id, old := range fc.entries {
		if _, kept := fresh[id]; !kept && old.inFlight {
			fresh[id] = old
		}
	}
	fc.entries = fresh
	fc.mu.Unlock()
	return nil
}

// Refresh reloads with the filter of the last Load.
func (fc *FeedCache) Refresh(ctx context.Context) error {
	fc.mu.Lock()
	filter := fc.filter
	fc.mu.Unlock()
	return fc.Load(ctx, filter)
}

// Items returns the feed as currently displayed.
func (fc *FeedCache) Items() []FeedItem {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]FeedItem, 0, len(fc.order))
	for _, id := range fc.order {
		if e, ok := fc.entries[id]; ok {
			out = append(out, e.shown)
		}
	}
	return out
}

// Item returns one displayed item and its state.
func (fc *FeedCache) Item(postID uuid.UUID) (FeedItem, ItemState, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	e, ok := fc.entries[postID]
	if !ok {
		return FeedItem{}, StateSynced, false
	}
	return e.shown, e.state, true
}

// Tap flips the like on postID locally and makes sure a toggle is on its way.
func (fc *FeedCache) Tap(postID uuid.UUID) error {
	fc.mu.Lock()
	if fc.closed {
		fc.mu.Unlock()
		return ErrClosed
	}
	e, ok := fc.entries[postID]
	if !ok {
		fc.mu.Unlock()
		return ErrUnknownPost
	}

	e.desired = !e.shown.LikedByMe
	applyGuess(&e.shown, e.desired)
	e.state = StatePending
	if !e.inFlight {
		e.inFlight = true
		fc.send(postID)
	}
	item, seq := e.shown, fc.nextSeq()
	fc.mu.Unlock()

	fc.changed(seq, item, StatePending)
	return nil
}

func applyGuess(it *FeedItem, liked bool) {
	if it.LikedByMe == liked {
		return
	}
	it.LikedByMe = liked
	if liked {
		it.LikeCount++
	} else if it.LikeCount > 0 {
		it.LikeCount--
	}
}

// send must be called with mu held.
func (fc *FeedCache) send(postID uuid.UUID) {
	fc.wg.Add(1)
	go func() {
		defer fc.wg.Done()
		ctx, cancel := context.WithTimeout(fc.ctx, fc.timeout)
		defer cancel()
		res, err := fc.backend.ToggleLike(ctx, postID)
		fc.settle(postID, res, err)
	}()
}

func (fc *FeedCache) settle(postID uuid.UUID, res LikeResult, err error) {
	fc.mu.Lock()
	if fc.closed {
		fc.mu.Unlock()
		return
	}
	e, ok := fc.entries[postID]
	if !ok {
		fc.mu.Unlock()
		return
	}

	if err != nil {
		e.inFlight = false
		e.shown.LikedByMe = e.confirmed.Liked
		e.shown.LikeCount = e.confirmed.LikeCount
		e.desired = e.confirmed.Liked
		e.state = StateRolledBack
		item, seq := e.shown, fc.nextSeq()
		fc.dropIfDetached(postID)
		fc.mu.Unlock()

		fc.changed(seq, item, StateRolledBack)
		if fc.onError != nil {
			fc.onError(postID, err)
		}
		return
	}

	e.confirmed = res
	e.shown.LikedByMe = res.Liked
	e.shown.LikeCount = res.LikeCount
	if e.desired != res.Liked {
		applyGuess(&e.shown, e.desired)
		e.state = StatePending
		fc.send(postID)
	} else {
		e.inFlight = false
		e.state = StateSynced
		fc.dropIfDetached(postID)
	}
	item, state, seq := e.shown, e.state, fc.nextSeq()
	fc.mu.Unlock()

	fc.changed(seq, item, state)
}

// nextSeq orders notifications. mu must be held.
func (fc *FeedCache) nextSeq() uint64 {
	fc.seq++
	return fc.seq
}

// dropIfDetached forgets an idle entry a later Load no longer lists. mu must be held.
func (fc *FeedCache) dropIfDetached(postID uuid.UUID) {
	if !lo.Contains(fc.order, postID) {
		delete(fc.entries, postID)
	}
}

// changed delivers one notification unless a later one for the same post already went out,
// so an observer always ends on the item's current state.
func (fc *FeedCache) changed(seq uint64, item FeedItem, state ItemState) {
	if fc.onChange == nil {
		return
	}
	fc.notifyMu.Lock()
	defer fc.notifyMu.Unlock()
	if seq <= fc.delivered[item.PostID] || fc.isClosed() {
		return
	}
	fc.delivered[item.PostID] = seq
	fc.onChange(item, state)
}

func (fc *FeedCache) isClosed() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.closed
}

// Close cancels in-flight requests; their results are discarded and no hook fires afterwards.
func (fc *FeedCache) Close() {
	fc.mu.Lock()
	fc.closed = true
	fc.mu.Unlock()
	fc.cancel()
}

// Wait blocks until every request started by the cache has returned.
func (fc *FeedCache) Wait() {
	fc.wg.Wait()
}
