package purse

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoSession is returned by Resume when nobody is logged in.
	ErrNoSession = errors.New("no active session, please log in")
	// ErrSessionClosed is returned by operations on a logged out session.
	ErrSessionClosed = errors.New("session is logged out")
)

// Wallet is the entry point of the core: it opens sessions and holds the
// single live state of every user with an open session.
//
// Every user's state is guarded by its own mutex. All sessions of a user
// share that state, so an operation always checks against the latest
// committed balance and holdings, whichever session committed them.
type Wallet struct {
	store  Store
	quotes Quoter
	ledger *Ledger
	trader *Trader
	log    *logrus.Logger
	now    func() time.Time

	mu   sync.Mutex
	live map[string]*live
}

// live is the in-memory state of a user with at least one open session.
type live struct {
	mu       sync.Mutex
	state    UserState
	loaded   bool
	sessions int
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithLogger sets the logger, logrus.StandardLogger() by default.
func WithLogger(log *logrus.Logger) Option { return func(w *Wallet) { w.log = log } }

// WithClock sets the clock used to timestamp transactions and trades.
func WithClock(now func() time.Time) Option { return func(w *Wallet) { w.now = now } }

// WithIDs sets the identifier generator, random UUIDs by default.
func WithIDs(newID func() string) Option {
	return func(w *Wallet) {
		w.ledger.newID = newID
		w.trader.newID = newID
	}
}

// WithStrictBills makes bill payments require a sufficient balance.
func WithStrictBills(strict bool) Option { return func(w *Wallet) { w.ledger.StrictBills = strict } }

// NewWallet returns a wallet persisting to store and pricing with quotes.
func NewWallet(store Store, quotes Quoter, opts ...Option) *Wallet {
	w := &Wallet{
		store:  store,
		quotes: quotes,
		ledger: &Ledger{env: env{newID: uuid.NewString}},
		trader: &Trader{env: env{newID: uuid.NewString}, quotes: quotes},
		log:    logrus.StandardLogger(),
		now:    time.Now,
		live:   make(map[string]*live),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.ledger.now = w.now
	w.trader.now = w.now
	return w
}

// Quotes returns the wallet's price source.
func (w *Wallet) Quotes() Quoter { return w.quotes }

// Now returns the time on the wallet's clock.
func (w *Wallet) Now() time.Time { return w.now() }

// Profile is what onboarding asks a new user.
type Profile struct {
	Name           string
	Country        Country         // Nigeria when empty
	OpeningBalance decimal.Decimal // in the country's currency
	Security       SecurityFlags
}

// Login opens a session for userID and records it as the current session.
//
// A user with persisted state gets it back and p is ignored. A new user is
// onboarded with p on top of the seed state.
func (w *Wallet) Login(ctx context.Context, userID string, p Profile) (*Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &ValidationError{Field: "user id", Reason: "missing"}
	}
	s, err := w.open(ctx, userID)
	if err != nil {
		return nil, err
	}
	log := w.log.WithField("user", userID)

	e := s.e
	e.mu.Lock()
	if !e.state.Account.Onboarded() {
		if err := w.onboard(ctx, &e.state, p); err != nil {
			e.mu.Unlock()
			w.release(userID, e)
			return nil, err
		}
		log.WithField("country", e.state.Account.Country).Info("account onboarded")
	}
	e.mu.Unlock()

	if err := w.store.Begin(ctx, SessionPointer{UserID: userID, LastUnlock: w.now()}); err != nil {
		w.release(userID, e)
		return nil, err
	}
	log.Info("logged in")
	return s, nil
}

// onboard applies the profile to a seed state and persists it.
func (w *Wallet) onboard(ctx context.Context, st *UserState, p Profile) error {
	country := p.Country
	if country == "" {
		country = Nigeria
	}
	cur, err := LocalCurrency(country)
	if err != nil {
		return err
	}
	if p.OpeningBalance.IsNegative() {
		return &ValidationError{Field: "opening balance", Reason: "must not be negative"}
	}
	next := st.Clone()
	next.Account.Name = strings.TrimSpace(p.Name)
	next.Account.Country = country
	next.Account.Currency = cur
	next.Account.Balance = M(p.OpeningBalance, cur)
	next.Account.Security = p.Security
	next.Account.Created = w.now()
	if err := w.store.Save(ctx, next.Account.ID, next); err != nil {
		return err
	}
	*st = next
	return nil
}

// Resume reopens the session recorded as current by the store.
func (w *Wallet) Resume(ctx context.Context) (*Session, error) {
	p, ok, err := w.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}
	return w.open(ctx, p.UserID)
}

// open returns a session on userID's live state, loading it if needed.
func (w *Wallet) open(ctx context.Context, userID string) (*Session, error) {
	e := w.acquire(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		st, err := w.store.Load(ctx, userID)
		if err != nil {
			w.release(userID, e)
			return nil, err
		}
		e.state, e.loaded = st, true
	}
	return &Session{w: w, userID: userID, e: e}, nil
}

func (w *Wallet) acquire(userID string) *live {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.live[userID]
	if !ok {
		e = &live{}
		w.live[userID] = e
	}
	e.sessions++
	return e
}

// release drops a session reference, forgetting the live state with the last one.
func (w *Wallet) release(userID string, e *live) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e.sessions--
	if e.sessions <= 0 && w.live[userID] == e {
		delete(w.live, userID)
	}
}
