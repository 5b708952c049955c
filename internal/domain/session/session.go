package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/internal/client"
	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/internal/domain/addecision"
	"github.com/RKmodz24/studio/internal/domain/cashout"
	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/ledger"
	"github.com/RKmodz24/studio/internal/domain/lifecycle"
	"github.com/RKmodz24/studio/internal/domain/offer"
	"github.com/RKmodz24/studio/internal/domain/payout"
	"github.com/RKmodz24/studio/internal/domain/referral"
	"github.com/RKmodz24/studio/internal/domain/taskregistry"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/crypto"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/pubsub"
	"github.com/RKmodz24/studio/pkg/scheduler"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Dependencies are shared by every session of a process.
type Dependencies struct {
	Registry   *taskregistry.Registry
	Repo       repository.KeyValueRepository
	Scheduler  scheduler.Scheduler
	Publisher  pubsub.Publisher
	AdDecision client.AdDecisionCaller
}

// Listener is called with the new snapshot after every change of a session.
// It runs while the session is locked and must not call back into it.
type Listener func(ctx context.Context, snapshot Snapshot)

type Snapshot struct {
	UserID           string                `json:"userId"`
	DiamondBalance   uint64                `json:"diamondBalance"`
	CurrencyBalance  decimal.Decimal       `json:"currencyBalance"`
	LifetimeEarnings decimal.Decimal       `json:"lifetimeEarnings"`
	Revision         uint64                `json:"revision"`
	PayoutProgress   decimal.Decimal       `json:"payoutProgress"`
	Eligible         bool                  `json:"eligible"`
	Tasks            []entity.Task         `json:"tasks"`
	Referral         entity.ReferralState  `json:"referral"`
	CashoutState     entity.CashoutState   `json:"cashoutState"`
	RememberedPayout *entity.PayoutDetails `json:"rememberedPayout,omitempty"`
	AdsWatched       uint64                `json:"adsWatched"`
	AdsShown         uint64                `json:"adsShown"`
	GameRewarded     uint64                `json:"gameRewarded"`

	// PendingCashout is the submitted transaction waiting for settlement.
	PendingCashout *entity.CashoutTransaction `json:"pendingCashout,omitempty"`
}

// Bonus is the outcome of a surprise bonus request. A bonus following an ad
// is credited after Delay.
type Bonus struct {
	ShowAd bool          `json:"showAd"`
	Reason string        `json:"reason"`
	Amount uint64        `json:"amount"`
	Delay  time.Duration `json:"delay"`
}

// Session owns the whole reward state of one user. Every mutation, including
// the delayed ones, holds mu so that state changes are applied one at a time.
type Session struct {
	mu sync.Mutex

	// ctx outlives requests, delayed callbacks run with it.
	ctx      context.Context
	userID   string
	cfg      config.RewardConfigs
	deps     Dependencies
	store    store
	listener Listener

	ledger       *ledger.Ledger
	tasks        []entity.Task
	referral     entity.ReferralState
	engine       *referral.Engine
	cashout      *cashout.Workflow
	adsWatched   uint64
	adsShown     uint64
	gameRewarded uint64
	offerStatus  map[string]entity.OfferStatus

	// retired are the catalog ad tasks replaced since the last reset.
	retired []string

	closed     bool
	nextHandle uint64
	handles    map[uint64]scheduler.Handle

	// touched is set on every access through the manager, idle is only read
	// and written by the manager sweep.
	touched atomic.Bool
	idle    time.Duration
}

// Load restores the session of a user. Missing entries fall back to their
// defaults, a referral code is generated on first load.
func Load(ctx context.Context, userID string, deps Dependencies, listener Listener) (*Session, error) {
	cfg := xcontext.Configs(ctx).Reward
	st := store{repo: deps.Repo, prefix: xcontext.Configs(ctx).Storage.KeyPrefix, userID: userID}

	p, err := st.load(ctx)
	if err != nil {
		return nil, err
	}

	model := currency.NewModelFromConfig(cfg)

	// A completion still pending when the state was saved will never fire.
	catalog := taskregistry.WithoutRetired(deps.Registry.Catalog(), p.retired)
	tasks := taskregistry.MergeCatalog(p.tasks, catalog)
	for i := range tasks {
		if tasks[i].Status == entity.TaskProcessing {
			tasks[i].Status = entity.TaskIncomplete
		}
	}

	s := &Session{
		ctx:          ctx,
		userID:       userID,
		cfg:          cfg,
		deps:         deps,
		store:        st,
		listener:     listener,
		ledger:       ledger.New(model, p.ledger),
		tasks:        tasks,
		referral:     p.referral,
		engine:       referral.NewEngine(cfg.CommissionRateBps),
		cashout:      cashout.NewWorkflow(p.payout),
		adsWatched:   p.adsWatched,
		adsShown:     p.adsShown,
		gameRewarded: p.gameRewarded,
		offerStatus:  p.offerStatus,
		retired:      p.retired,
		handles:      map[uint64]scheduler.Handle{},
	}

	if s.referral.Code == "" {
		s.referral.Code = referral.GenerateCode()
		s.store.set(ctx, common.StateReferralCode, s.referral.Code)
	}

	s.saveTasks(ctx)
	return s, nil
}

func (s *Session) UserID() string {
	return s.userID
}

// RequestCompletion applies the completion request of a task. Requests for a
// task which is not incomplete are ignored.
func (s *Session) RequestCompletion(ctx context.Context, taskID string) (lifecycle.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return lifecycle.Action{}, err
	}

	i := s.indexOf(taskID)
	if i < 0 {
		return lifecycle.Action{}, errorx.New(errorx.NotFound, "Not found task")
	}

	action := lifecycle.Decide(s.tasks[i], lifecycle.DelaysFromConfig(s.cfg))
	switch action.Type {
	case lifecycle.StartCashout:
		if _, err := s.requestCashoutLocked(ctx); err != nil {
			return action, err
		}

	case lifecycle.OpenLink:
		s.completeLocked(ctx, i)

	case lifecycle.Complete:
		s.tasks[i].Status = entity.TaskProcessing
		s.saveTasks(ctx)
		s.notify(ctx)

		s.schedule(action.Delay, func(ctx context.Context) {
			// The task may have been replaced by a cashout reset.
			if i := s.indexOf(taskID); i >= 0 && s.tasks[i].Status == entity.TaskProcessing {
				s.completeLocked(ctx, i)
			}
		})
	}

	return action, nil
}

// completeLocked marks the task at index i completed and applies the reward,
// the referral side effects and the ad replenishment.
func (s *Session) completeLocked(ctx context.Context, i int) {
	task := s.tasks[i]
	s.tasks[i].Status = entity.TaskCompleted
	s.credit(ctx, SourceTask, task.Reward)

	var commission uint64
	if task.IsReferralApplication() {
		s.engine.RecordApplication(&s.referral)
	} else if commission = s.engine.Apply(&s.referral, task); commission > 0 {
		s.credit(ctx, SourceCommission, commission)
	}

	if task.Type == entity.TaskAd {
		if _, ok := s.deps.Registry.Get(task.ID); ok {
			s.retired = append(s.retired, task.ID)
			s.store.setJSON(ctx, common.StateRetiredTasks, s.retired)
		}

		s.tasks = slices.Delete(s.tasks, i, i+1)
		s.tasks = append(s.tasks, s.deps.Registry.NewAdTask(task))
		s.adsWatched++
		s.store.setUint(ctx, common.StateAdsWatched, s.adsWatched)
	}

	s.publish(ctx, common.TaskCompletedTopic, TaskCompletedEvent{
		UserID:     s.userID,
		TaskID:     task.ID,
		TaskType:   string(task.Type),
		Reward:     task.Reward,
		Commission: commission,
	})

	s.saveLedger(ctx)
	s.saveReferral(ctx)
	s.saveTasks(ctx)
	s.notify(ctx)
}

// OnGameReward credits a reward reported by the mini-game. The amount is
// clipped to what is left of the per-session cap, if any. It returns the
// credited amount.
func (s *Session) OnGameReward(ctx context.Context, amount uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	if limit := s.cfg.MaxGameRewardPerSession; limit > 0 {
		var remaining uint64
		if s.gameRewarded < limit {
			remaining = limit - s.gameRewarded
		}

		if amount > remaining {
			xcontext.Logger(ctx).Warnf("Clip game reward of %s from %d to %d", s.userID, amount, remaining)
			amount = remaining
		}
	}

	if amount == 0 {
		return 0, nil
	}

	s.gameRewarded += amount
	s.credit(ctx, SourceGame, amount)
	s.store.setUint(ctx, common.StateGameRewarded, s.gameRewarded)
	s.saveLedger(ctx)
	s.notify(ctx)
	return amount, nil
}

// SurpriseBonus asks the ad-decision service whether to show an ad. With an
// ad the bonus is larger and credited after the ad, otherwise a small bonus
// is credited at once.
func (s *Session) SurpriseBonus(ctx context.Context) (Bonus, error) {
	s.mu.Lock()
	if err := s.checkOpen(); err != nil {
		s.mu.Unlock()
		return Bonus{}, err
	}

	req := addecision.Request{
		UserActivity: `User clicked on "Surprise Bonus"`,
		CoinBalance:  s.ledger.DiamondBalance(),
		AdFrequency:  addecision.FrequencyOf(s.adsShown),
	}
	s.mu.Unlock()

	// The ad service is not called under the lock.
	decision, err := s.deps.AdDecision.Decide(ctx, req)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ad decision: %v", err)
		return Bonus{}, errorx.New(errorx.AdServiceError, "Cannot get a surprise bonus now, please try again later")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return Bonus{}, err
	}

	bonus := Bonus{ShowAd: decision.ShowAd, Reason: decision.Reason}
	if decision.ShowAd {
		bonus.Amount = uint64(crypto.RandRange(50, 250))
		bonus.Delay = s.cfg.BonusDelay

		s.adsShown++
		s.store.setUint(ctx, common.StateAdsShown, s.adsShown)

		s.schedule(bonus.Delay, func(ctx context.Context) {
			s.credit(ctx, SourceBonus, bonus.Amount)
			s.saveLedger(ctx)
			s.notify(ctx)
		})
	} else {
		bonus.Amount = uint64(crypto.RandRange(10, 60))
		s.credit(ctx, SourceBonus, bonus.Amount)
		s.saveLedger(ctx)
		s.notify(ctx)
	}

	return bonus, nil
}

// RequestCashout opens the payout form and returns the remembered details.
func (s *Session) RequestCashout(ctx context.Context) (*entity.PayoutDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	return s.requestCashoutLocked(ctx)
}

func (s *Session) requestCashoutLocked(ctx context.Context) (*entity.PayoutDetails, error) {
	details, err := s.cashout.Request(s.ledger)
	if err != nil {
		return nil, err
	}

	s.notify(ctx)
	return details, nil
}

// SubmitCashout takes the snapshot of the balance and schedules its
// settlement. The details must have been validated.
func (s *Session) SubmitCashout(
	ctx context.Context, details entity.PayoutDetails, remember bool,
) (*entity.CashoutTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	tx, err := s.cashout.Submit(s.ledger, details, remember)
	if err != nil {
		return nil, err
	}

	if remember {
		s.store.setJSON(ctx, common.StatePayoutDetails, details)
	} else {
		s.store.delete(ctx, common.StatePayoutDetails)
	}

	result := *tx
	s.schedule(s.cfg.SettlementDelay, s.settleLocked)
	s.notify(ctx)
	return &result, nil
}

func (s *Session) settleLocked(ctx context.Context) {
	tx := s.cashout.Settle(s.ledger)
	if tx == nil {
		return
	}

	s.engine.Reset(&s.referral)
	s.tasks = s.deps.Registry.Catalog()
	s.retired = nil
	s.store.delete(ctx, common.StateRetiredTasks)

	common.PromCounters[common.CashoutsSettledTotal].
		WithLabelValues(string(tx.Details.Method)).Inc()

	s.publish(ctx, common.CashoutSettledTopic, CashoutSettledEvent{
		UserID:        s.userID,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Diamonds:      tx.Diamonds,
		Details:       payout.Encode(tx.Details),
	})

	xcontext.Logger(ctx).Infof("Settled cashout %s of %s: %s", tx.ID, s.userID, tx.Amount.String())

	s.saveLedger(ctx)
	s.saveReferral(ctx)
	s.saveTasks(ctx)
	s.notify(ctx)
}

func (s *Session) CancelCashout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.cashout.Cancel(); err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

// OfferStatus returns the claim status of an offer.
func (s *Session) OfferStatus(offerID string) entity.OfferStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.offerStatus[offerID]; ok {
		return status
	}

	return entity.OfferUnclaimed
}

// ClaimOffer marks the offer pending and returns the link to follow.
func (s *Session) ClaimOffer(ctx context.Context, offerID string) (string, error) {
	o, ok := offer.Get(offerID)
	if !ok {
		return "", errorx.New(errorx.NotFound, "Not found offer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}

	if s.offerStatus[offerID] != entity.OfferPending {
		s.offerStatus[offerID] = entity.OfferPending
		s.store.setJSON(ctx, common.StateOfferStatus, s.offerStatus)
	}

	return o.Link, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	model := s.ledger.Model()

	var pending *entity.CashoutTransaction
	if tx := s.cashout.InFlight(); tx != nil {
		copied := *tx
		pending = &copied
	}

	return Snapshot{
		UserID:           s.userID,
		DiamondBalance:   s.ledger.DiamondBalance(),
		CurrencyBalance:  s.ledger.CurrencyBalance(),
		LifetimeEarnings: s.ledger.LifetimeEarnings(),
		Revision:         s.ledger.Revision(),
		PayoutProgress:   model.Progress(s.ledger.DiamondBalance()),
		Eligible:         s.ledger.IsEligible(),
		Tasks:            append([]entity.Task{}, s.tasks...),
		Referral:         s.referral,
		CashoutState:     s.cashout.State(),
		RememberedPayout: s.cashout.Remembered(),
		PendingCashout:   pending,
		AdsWatched:       s.adsWatched,
		AdsShown:         s.adsShown,
		GameRewarded:     s.gameRewarded,
	}
}

// Close cancels every pending completion and settlement. Callbacks firing
// afterwards are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	for id, h := range s.handles {
		h.Cancel()
		delete(s.handles, id)
	}
}

func (s *Session) touch() {
	s.touched.Store(true)
}

// idleFor adds d to the idle time, or resets it when the session has been
// accessed since the previous call.
func (s *Session) idleFor(d time.Duration) time.Duration {
	if s.touched.Swap(false) {
		s.idle = 0
	} else {
		s.idle += d
	}

	return s.idle
}

// hasPending reports whether a completion, a bonus or a settlement is still
// scheduled.
func (s *Session) hasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.handles) > 0
}

func (s *Session) checkOpen() error {
	if s.closed {
		return errorx.New(errorx.Unavailable, "Session is closed")
	}

	return nil
}

func (s *Session) indexOf(taskID string) int {
	return slices.IndexFunc(s.tasks, func(t entity.Task) bool { return t.ID == taskID })
}

// schedule runs fn under the session lock after the delay, unless the session
// is closed by then. It must be called with the lock held.
func (s *Session) schedule(after time.Duration, fn func(ctx context.Context)) {
	s.nextHandle++
	id := s.nextHandle

	s.handles[id] = s.deps.Scheduler.Schedule(after, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.handles, id)
		if s.closed {
			return
		}

		fn(s.ctx)
	})
}

func (s *Session) credit(ctx context.Context, source string, amount uint64) {
	if amount == 0 {
		return
	}

	s.ledger.Credit(amount)
	common.PromCounters[common.DiamondsCreditedTotal].WithLabelValues(source).Add(float64(amount))

	s.publish(ctx, common.RewardCreditedTopic, RewardCreditedEvent{
		UserID:   s.userID,
		Source:   source,
		Amount:   amount,
		Balance:  s.ledger.DiamondBalance(),
		Revision: s.ledger.Revision(),
	})
}

func (s *Session) publish(ctx context.Context, topic string, event any) {
	if s.deps.Publisher == nil {
		return
	}

	pack, err := pubsub.NewPack(s.userID, event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create pack of %s: %v", topic, err)
		return
	}

	if err := s.deps.Publisher.Publish(ctx, topic, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish to %s: %v", topic, err)
	}
}

func (s *Session) notify(ctx context.Context) {
	if s.listener != nil {
		s.listener(ctx, s.snapshotLocked())
	}
}

func (s *Session) saveLedger(ctx context.Context) {
	snapshot := s.ledger.Snapshot()
	s.store.setUint(ctx, common.StateDiamonds, snapshot.DiamondBalance)
	s.store.set(ctx, common.StateLifetimeEarnings, snapshot.LifetimeEarnings.String())
}

func (s *Session) saveReferral(ctx context.Context) {
	s.store.setUint(ctx, common.StateReferralCount, s.referral.Count)
	s.store.setUint(ctx, common.StateCommissionEarned, s.referral.CommissionEarned)
}

func (s *Session) saveTasks(ctx context.Context) {
	s.store.setJSON(ctx, common.StateTasks, s.tasks)
}
