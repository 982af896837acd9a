package crm

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	DefaultSeedDelay = time.Second

	// AI scores are drawn from [minAIScore, minAIScore+aiScoreSpan).
	minAIScore  = 60
	aiScoreSpan = 40

	seedTimeout = 10 * time.Second
	idAttempts  = 8
)

// ScoreSource is the random source behind lead AI scores. *rand.Rand
// satisfies it.
type ScoreSource interface {
	Intn(n int) int
}

type Option func(*Store)

func WithSeedDelay(d time.Duration) Option {
	return func(s *Store) { s.seedDelay = d }
}

func WithSource(src Source) Option {
	return func(s *Store) { s.source = src }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithScoreSource(src ScoreSource) Option {
	return func(s *Store) { s.score = src }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the single owner of contacts, leads and insights for a session.
// Every read and write goes through it.
type Store struct {
	mu       sync.RWMutex
	contacts []entity.Contact
	leads    []entity.Lead
	insights []entity.AIInsight
	loading  bool
	started  bool
	closed   bool
	timer    *time.Timer
	ready    chan struct{}

	listeners    []subscription
	nextListener int

	// Events are queued under mu in mutation order and delivered by whoever
	// holds notifyMu. queueMu only guards queue.
	queueMu  sync.Mutex
	queue    []delivery
	notifyMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc

	seedDelay time.Duration
	source    Source
	newID     func() string
	score     ScoreSource
	now       func() time.Time
}

type subscription struct {
	id int
	fn Listener
}

// New returns a store in the loading state with empty collections. Call
// Start to schedule the bootstrap seed.
func New(opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		contacts:  []entity.Contact{},
		leads:     []entity.Lead{},
		insights:  []entity.AIInsight{},
		loading:   true,
		ready:     make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		seedDelay: DefaultSeedDelay,
		source:    BootstrapSource,
		newID:     uuid.NewString,
		score:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the one-shot seed. Later calls do nothing.
func (s *Store) Start() {
	s.lockActive()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.timer = time.AfterFunc(s.seedDelay, s.seed)
}

// Close tears the store down. A pending seed is cancelled and never writes.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.cancel()
	s.listeners = nil
}

func (s *Store) seed() {
	ctx, cancel := context.WithTimeout(s.ctx, seedTimeout)
	defer cancel()

	data, err := s.source.Load(ctx)
	if err != nil {
		if s.ctx.Err() != nil {
			return
		}
		log.Printf("crm: falha ao carregar dados iniciais, usando bootstrap: %v", err)
		data = Bootstrap()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.contacts = append([]entity.Contact{}, data.Contacts...)
	s.leads = append([]entity.Lead{}, data.Leads...)
	s.insights = append([]entity.AIInsight{}, data.Insights...)
	s.loading = false
	s.enqueue(Event{Type: EventSeeded, OccurredAt: s.now()})
	s.mu.Unlock()

	log.Printf("crm: dados carregados (%d contatos, %d leads, %d insights)",
		len(data.Contacts), len(data.Leads), len(data.Insights))
	s.flush()
	close(s.ready)
}

// Ready is closed once the seed has been applied and listeners have seen it.
// It never closes for a store torn down before seeding.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) Loading() bool {
	s.rlockActive()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Contacts() []entity.Contact {
	s.rlockActive()
	defer s.mu.RUnlock()
	out := make([]entity.Contact, len(s.contacts))
	for i, c := range s.contacts {
		out[i] = c.Clone()
	}
	return out
}

func (s *Store) Leads() []entity.Lead {
	s.rlockActive()
	defer s.mu.RUnlock()
	out := make([]entity.Lead, len(s.leads))
	for i, l := range s.leads {
		out[i] = l.Clone()
	}
	return out
}

func (s *Store) Insights() []entity.AIInsight {
	s.rlockActive()
	defer s.mu.RUnlock()
	return append([]entity.AIInsight{}, s.insights...)
}

// Contact looks a single contact up by id.
func (s *Store) Contact(id string) (entity.Contact, bool) {
	s.rlockActive()
	defer s.mu.RUnlock()
	if i := s.contactIndex(id); i >= 0 {
		return s.contacts[i].Clone(), true
	}
	return entity.Contact{}, false
}

func (s *Store) Lead(id string) (entity.Lead, bool) {
	s.rlockActive()
	defer s.mu.RUnlock()
	if i := s.leadIndex(id); i >= 0 {
		return s.leads[i].Clone(), true
	}
	return entity.Lead{}, false
}

func (s *Store) AddContact(in entity.ContactInput) entity.Contact {
	s.lockActive()
	id := s.uniqueID(func(id string) bool { return s.contactIndex(id) >= 0 })
	c := entity.NewContact(id, s.today(), in)
	s.contacts = append(s.contacts, c)
	ev := s.event(EventContactCreated, id)
	ev.Contact = ptr(c.Clone())
	s.enqueue(ev)
	s.mu.Unlock()

	s.flush()
	return c.Clone()
}

// UpdateContact merges patch into the contact with the given id. Unknown ids
// are ignored.
func (s *Store) UpdateContact(id string, patch entity.ContactPatch) {
	s.lockActive()
	i := s.contactIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.contacts[i].Apply(patch)
	ev := s.event(EventContactUpdated, id)
	ev.Contact = ptr(s.contacts[i].Clone())
	s.enqueue(ev)
	s.mu.Unlock()

	s.flush()
}

func (s *Store) DeleteContact(id string) {
	s.lockActive()
	i := s.contactIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
	ev := s.event(EventContactDeleted, id)
	s.enqueue(ev)
	s.mu.Unlock()

	s.flush()
}

// AddLead appends a lead with a fresh id, today's date and an AI score in
// [60, 100).
func (s *Store) AddLead(in entity.LeadInput) entity.Lead {
	s.lockActive()
	id := s.uniqueID(func(id string) bool { return s.leadIndex(id) >= 0 })
	score := minAIScore + s.score.Intn(aiScoreSpan)
	l := entity.NewLead(id, s.today(), score, in)
	s.leads = append(s.leads, l)
	ev := s.event(EventLeadCreated, id)
	ev.Lead = ptr(l.Clone())
	s.enqueue(ev)
	s.mu.Unlock()

	s.flush()
	return l.Clone()
}

func (s *Store) UpdateLead(id string, patch entity.LeadPatch) {
	s.lockActive()
	i := s.leadIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.leads[i].Apply(patch)
	ev := s.event(EventLeadUpdated, id)
	ev.Lead = ptr(s.leads[i].Clone())
	s.enqueue(ev)
	s.mu.Unlock()

	s.flush()
}

func (s *Store) DeleteLead(id string) {
	s.lockActive()
	i := s.leadIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.leads = append(s.leads[:i], s.leads[i+1:]...)
	ev := s.event(EventLeadDeleted, id)
	s.enqueue(ev)
	s.mu.Unlock()

	s.flush()
}

// lockActive takes the write lock, panicking with ErrProviderMissing when
// the store is nil or closed.
func (s *Store) lockActive() {
	if s == nil {
		panic(ErrProviderMissing)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		panic(ErrProviderMissing)
	}
}

func (s *Store) rlockActive() {
	if s == nil {
		panic(ErrProviderMissing)
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		panic(ErrProviderMissing)
	}
}

func (s *Store) active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

func (s *Store) contactIndex(id string) int {
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) leadIndex(id string) int {
	for i := range s.leads {
		if s.leads[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueID asks the generator for an id not yet taken. A generator that keeps
// colliding falls back to a random UUID.
func (s *Store) uniqueID(taken func(string) bool) string {
	for attempt := 0; attempt < idAttempts; attempt++ {
		if id := s.newID(); !taken(id) {
			return id
		}
	}
	return uuid.NewString()
}

func (s *Store) today() string {
	return s.now().Format(entity.DateLayout)
}

func (s *Store) event(t EventType, id string) Event {
	return Event{Type: t, ID: id, OccurredAt: s.now()}
}

func ptr[T any](v T) *T {
	return &v
}
