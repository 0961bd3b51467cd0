package purse

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/etnz/purse/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testWallet(store Store, opts ...Option) *Wallet {
	opts = append([]Option{WithLogger(quietLogger()), WithClock(fixedClock)}, opts...)
	return NewWallet(store, NewRandomFeed(1), opts...)
}

func TestWallet_LoginLogout(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	w := testWallet(store, WithIDs(sequence()))

	s, err := w.Login(ctx, "ada", Profile{Name: "Ada", Country: Ghana, OpeningBalance: decimal.NewFromInt(200)})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	st := s.State()
	if st.Account.Currency != "GHS" || !st.Account.Balance.Equal(M(200, "GHS")) || st.Account.Name != "Ada" {
		t.Errorf("onboarded account = %+v", st.Account)
	}
	if !st.Account.Created.Equal(noon) || len(st.Holdings) != 3 {
		t.Errorf("onboarded state = %+v", st)
	}
	if _, err := s.Deposit(ctx, M(50, "GHS"), "momo"); err != nil {
		t.Fatalf("Deposit() error = %v", err)
	}

	resumed, err := w.Resume(ctx)
	if err != nil || resumed.UserID() != "ada" {
		t.Fatalf("Resume() = %v, %v", resumed, err)
	}
	resumed.Logout(ctx)

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if err := s.Logout(ctx); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("second Logout() error = %v, want %v", err, ErrSessionClosed)
	}
	if _, err := s.Deposit(ctx, M(1, "GHS"), "momo"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Deposit() after Logout error = %v, want %v", err, ErrSessionClosed)
	}
	if st := s.State(); st.Account.ID != "" || len(st.Transactions) != 0 {
		t.Errorf("State() after Logout = %+v, want the zero state", st)
	}
	if _, err := s.Valuation(ctx); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Valuation() after Logout error = %v, want %v", err, ErrSessionClosed)
	}
	if _, err := w.Resume(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Resume() after Logout error = %v, want %v", err, ErrNoSession)
	}

	// a fresh wallet on the same store restores the state, the profile is ignored
	again, err := testWallet(store).Login(ctx, "ada", Profile{Country: Senegal})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	st = again.State()
	if !st.Account.Balance.Equal(M(250, "GHS")) || len(st.Transactions) != 1 {
		t.Errorf("restored state = %+v", st)
	}
}

func TestWallet_LoginRejections(t *testing.T) {
	ctx := context.Background()
	w := testWallet(NewMemStore())
	testCases := []struct {
		name    string
		user    string
		profile Profile
	}{
		{name: "no user", user: "  "},
		{name: "unsupported country", user: "ada", profile: Profile{Country: "France"}},
		{name: "negative opening balance", user: "bob", profile: Profile{OpeningBalance: decimal.NewFromInt(-1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.Login(ctx, tc.user, tc.profile)
			wantErr[*ValidationError](t, err)
		})
	}
	if len(w.live) != 0 {
		t.Errorf("failed logins left live states: %v", w.live)
	}
}

func TestWallet_SharedState(t *testing.T) {
	ctx := context.Background()
	w := testWallet(NewMemStore())
	a, err := w.Login(ctx, "ada", Profile{OpeningBalance: decimal.NewFromInt(1000)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := w.Login(ctx, "ada", Profile{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Deposit(ctx, NGN(500), "card"); err != nil {
		t.Fatal(err)
	}
	if got := b.State().Account.Balance; !got.Equal(NGN(1500)) {
		t.Errorf("other session balance = %v, want %v", got, NGN(1500))
	}
	if _, err := b.WithdrawCash(ctx, NGN(1600), "Opay"); err == nil {
		t.Errorf("WithdrawCash() overdrew the shared balance")
	}

	a.Logout(ctx)
	if _, err := b.WithdrawCash(ctx, NGN(1500), "Opay"); err != nil {
		t.Errorf("WithdrawCash() on the remaining session error = %v", err)
	}
}

func TestWallet_ConcurrentBuys(t *testing.T) {
	ctx := context.Background()
	w := testWallet(NewMemStore())
	// ten USDT at 1 USD and 1550 NGN per USD
	s1, err := w.Login(ctx, "ada", Profile{OpeningBalance: decimal.NewFromInt(15500)})
	if err != nil {
		t.Fatal(err)
	}
	s2, err := w.Login(ctx, "ada", Profile{})
	if err != nil {
		t.Fatal(err)
	}

	var ok, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			_, err := s.TradeCrypto(ctx, "USDT", Q(1), true)
			var funds *InsufficientFundsError
			switch {
			case err == nil:
				ok.Add(1)
			case errors.As(err, &funds):
				rejected.Add(1)
			default:
				t.Errorf("TradeCrypto() error = %v", err)
			}
		}([]*Session{s1, s2}[i%2])
	}
	wg.Wait()

	if ok.Load() != 10 || rejected.Load() != 30 {
		t.Errorf("%d buys succeeded and %d were rejected, want 10 and 30", ok.Load(), rejected.Load())
	}
	st := s1.State()
	if !st.Account.Balance.IsZero() {
		t.Errorf("balance = %v, want 0", st.Account.Balance)
	}
	if !st.Holding("USDT").Equal(Q(1510)) || len(st.Trades) != 10 {
		t.Errorf("USDT = %v with %d trades, want 1510 with 10", st.Holding("USDT"), len(st.Trades))
	}
}

// failingStore fails every Save once broken.
type failingStore struct {
	*MemStore
	broken atomic.Bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Save(ctx context.Context, userID string, s UserState) error {
	if f.broken.Load() {
		return errDiskFull
	}
	return f.MemStore.Save(ctx, userID, s)
}

func TestWallet_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemStore: NewMemStore()}
	w := testWallet(store)
	s, err := w.Login(ctx, "ada", Profile{OpeningBalance: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatal(err)
	}
	store.broken.Store(true)

	tx, err := s.Deposit(ctx, NGN(50), "card")
	pe := wantErr[*PersistenceError](t, err)
	if !errors.Is(pe, errDiskFull) || pe.Op != "save" || pe.UserID != "ada" {
		t.Errorf("PersistenceError = %v", pe)
	}
	if tx.ID == "" {
		t.Errorf("Deposit() did not return the applied transaction")
	}
	if got := s.State().Account.Balance; !got.Equal(NGN(150)) {
		t.Errorf("in-memory balance = %v, want %v", got, NGN(150))
	}
	persisted, _ := store.Load(ctx, "ada")
	if !persisted.Account.Balance.Equal(NGN(100)) {
		t.Errorf("persisted balance = %v, want %v", persisted.Account.Balance, NGN(100))
	}

	// rejected operations never reach the store
	if _, err := s.WithdrawCash(ctx, NGN(1000), "Opay"); errors.As(err, &pe) {
		t.Errorf("rejected withdrawal reported %v", err)
	}
}

func TestSession_Operations(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	w := testWallet(store, WithIDs(sequence()), WithStrictBills(true))
	s, err := w.Login(ctx, "ada", Profile{OpeningBalance: decimal.NewFromInt(100000)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.PayBill(ctx, BillPayment{Amount: NGN(200000), Name: "Rent", Schedule: OneOff{}}); err == nil {
		t.Errorf("PayBill() overdrew with strict bills")
	}
	receipt, err := s.PayBill(ctx, BillPayment{
		Amount:   NGN(15000),
		Name:     "Internet",
		Category: "Utilities",
		Schedule: Recurring{Frequency: Monthly, Start: date.MustParse("2025-04-01")},
	})
	if err != nil || receipt.Recurring == nil {
		t.Fatalf("PayBill() = %+v, %v", receipt, err)
	}
	if _, err := s.ToggleRecurring(ctx, receipt.Recurring.ID); err != nil {
		t.Errorf("ToggleRecurring() error = %v", err)
	}
	if _, err := s.WithdrawCrypto(ctx, "BTC", Q(0.05), "bc1qxyz"); err != nil {
		t.Errorf("WithdrawCrypto() error = %v", err)
	}
	if err := s.SetSecurity(ctx, SecurityFlags{PIN: true}); err != nil {
		t.Errorf("SetSecurity() error = %v", err)
	}
	err = s.EditRecords(ctx, func(r *Records) error {
		r.Agents.Add(Agent{ID: "a1", Name: "Saver"})
		return r.Agents.Add(Agent{ID: "a1", Name: "Dup"})
	})
	if err == nil {
		t.Errorf("EditRecords() accepted a duplicate")
	}
	if err := s.EditRecords(ctx, func(r *Records) error { return r.Goals.Add(BudgetGoal{ID: "g1", Name: "Car"}) }); err != nil {
		t.Errorf("EditRecords() error = %v", err)
	}

	persisted, err := store.Load(ctx, "ada")
	if err != nil {
		t.Fatal(err)
	}
	if jsonOf(t, persisted) != jsonOf(t, s.State()) {
		t.Errorf("persisted state differs from the live state")
	}
	if persisted.Agents.Len() != 0 || !persisted.Goals.Has("g1") {
		t.Errorf("records = %+v", persisted.Records)
	}
	if len(persisted.Recurring) != 1 || persisted.Recurring[0].Active {
		t.Errorf("Recurring = %+v, want one paused payment", persisted.Recurring)
	}
	if !persisted.Account.Security.PIN || !persisted.Holding("BTC").Equal(Q(0.4)) {
		t.Errorf("state = %+v", persisted)
	}

	v, err := s.Valuation(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Cash.Equal(NGN(100000)) || len(v.Positions) != 3 {
		t.Errorf("Valuation() = %+v", v)
	}
}
