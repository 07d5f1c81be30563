package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"xisaabi/internal/gateway"
	"xisaabi/internal/models/db_models"
	"xisaabi/internal/repositories"
)

// In-memory repository fakes backing the channel and router tests. They honor
// the same nil-on-missing contract as the gorm implementations; the for-update
// variants just delegate since a single test goroutine needs no row locks.

type fakeStore struct {
	mu            sync.Mutex
	accounts      map[uuid.UUID]*db_models.Account
	plans         map[uuid.UUID]*db_models.Plan
	subscriptions map[uuid.UUID]*db_models.Subscription // keyed by account id
	transactions  map[uuid.UUID]*db_models.PaymentTransaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:      make(map[uuid.UUID]*db_models.Account),
		plans:         make(map[uuid.UUID]*db_models.Plan),
		subscriptions: make(map[uuid.UUID]*db_models.Subscription),
		transactions:  make(map[uuid.UUID]*db_models.PaymentTransaction),
	}
}

func (s *fakeStore) addAccount(a *db_models.Account) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.accounts[a.ID] = a
}

func (s *fakeStore) addPlan(p *db_models.Plan) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.plans[p.ID] = p
}

type fakeAccountRepo struct{ s *fakeStore }

func (r *fakeAccountRepo) Create(_ context.Context, a *db_models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.s.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.accounts[id], nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

type fakePlanRepo struct{ s *fakeStore }

func (r *fakePlanRepo) GetByID(_ context.Context, id uuid.UUID) (*db_models.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.plans[id], nil
}

func (r *fakePlanRepo) GetByCode(_ context.Context, code string) (*db_models.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePlanRepo) GetDefault(_ context.Context) (*db_models.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.IsDefault && p.IsActive {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePlanRepo) ListActive(_ context.Context) ([]db_models.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.Plan
	for _, p := range r.s.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Create(_ context.Context, p *db_models.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) Save(_ context.Context, p *db_models.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) ClearDefault(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		p.IsDefault = false
	}
	return nil
}

type fakeSubscriptionRepo struct{ s *fakeStore }

func (r *fakeSubscriptionRepo) GetByAccount(_ context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.subscriptions[accountID], nil
}

func (r *fakeSubscriptionRepo) GetByAccountForUpdate(ctx context.Context, accountID uuid.UUID) (*db_models.Subscription, error) {
	return r.GetByAccount(ctx, accountID)
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *db_models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	r.s.subscriptions[sub.AccountID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Save(_ context.Context, sub *db_models.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.subscriptions[sub.AccountID] = sub
	return nil
}

type fakeTransactionRepo struct{ s *fakeStore }

func (r *fakeTransactionRepo) Create(_ context.Context, txn *db_models.PaymentTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	r.s.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) Save(_ context.Context, txn *db_models.PaymentTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*db_models.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.transactions[id], nil
}

func (r *fakeTransactionRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.PaymentTransaction, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTransactionRepo) GetByReference(_ context.Context, reference string) (*db_models.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, txn := range r.s.transactions {
		if txn.Reference == reference {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetByReferenceForUpdate(ctx context.Context, reference string) (*db_models.PaymentTransaction, error) {
	return r.GetByReference(ctx, reference)
}

func (r *fakeTransactionRepo) ListPendingApproval(_ context.Context) ([]db_models.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.PaymentTransaction
	for _, txn := range r.s.transactions {
		if txn.PaymentType == db_models.PaymentTypeOffline && txn.Status == db_models.TxnStatusPendingApproval {
			copied := *txn
			if acc, ok := r.s.accounts[txn.AccountID]; ok {
				copied.Account = *acc
			}
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.PaymentTransaction
	for _, txn := range r.s.transactions {
		if txn.AccountID == accountID {
			out = append(out, *txn)
		}
	}
	return out, nil
}

type fakeUnitOfWork struct{ s *fakeStore }

func newFakeUnitOfWork(s *fakeStore) *fakeUnitOfWork {
	return &fakeUnitOfWork{s: s}
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(r repositories.Repos) error) error {
	return fn(u.Repos())
}

func (u *fakeUnitOfWork) Repos() repositories.Repos {
	return repositories.Repos{
		Accounts:      &fakeAccountRepo{s: u.s},
		Plans:         &fakePlanRepo{s: u.s},
		Subscriptions: &fakeSubscriptionRepo{s: u.s},
		Transactions:  &fakeTransactionRepo{s: u.s},
	}
}

// fakeGateway answers every purchase with a scripted result.
type fakeGateway struct {
	result *gateway.PurchaseResult
	err    error
	calls  int
	last   gateway.PurchaseRequest
}

func (g *fakeGateway) Purchase(_ context.Context, req gateway.PurchaseRequest) (*gateway.PurchaseResult, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// fakeNotifier records which notifications fired.
type fakeNotifier struct {
	mu        sync.Mutex
	failed    []NotificationPayload
	submitted []NotificationPayload
	approved  []NotificationPayload
	rejected  []NotificationPayload
	activated []NotificationPayload
}

func (n *fakeNotifier) SendPaymentFailed(_ *db_models.Account, p NotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, p)
}

func (n *fakeNotifier) SendOfflinePaymentSubmitted(_ *db_models.Account, p NotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, p)
}

func (n *fakeNotifier) SendOfflinePaymentApproved(_ *db_models.Account, p NotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, p)
}

func (n *fakeNotifier) SendOfflinePaymentRejected(_ *db_models.Account, p NotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, p)
}

func (n *fakeNotifier) SendSubscriptionActivated(_ *db_models.Account, p NotificationPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activated = append(n.activated, p)
}

func businessAccount() *db_models.Account {
	return &db_models.Account{
		Name:        "Asha Stores",
		Email:       "asha@example.com",
		AccountType: db_models.AccountTypeBusiness,
	}
}

func monthlyPlan() *db_models.Plan {
	return &db_models.Plan{
		Code:     "standard",
		Name:     "Standard",
		Price:    decimal.NewFromFloat(9.99),
		Currency: "USD",
		Cycle:    db_models.CycleMonthly,
		IsActive: true,
	}
}
