package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/internal/domain/addecision"
	"github.com/RKmodz24/studio/internal/domain/lifecycle"
	"github.com/RKmodz24/studio/internal/domain/search"
	"github.com/RKmodz24/studio/internal/domain/taskregistry"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/scheduler"
	"github.com/RKmodz24/studio/pkg/testutil"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	ctx       context.Context
	clock     *scheduler.Manual
	repo      repository.KeyValueRepository
	publisher *testutil.RecordPublisher
	ad        *testutil.MockAdDecisionCaller
	deps      Dependencies
}

func newTestEnv(t *testing.T) *testEnv {
	ctx := testutil.MockContext()

	index := search.NewBleveIndex(ctx)
	t.Cleanup(index.Close)

	registry, err := taskregistry.NewRegistry(ctx, 1, index)
	require.NoError(t, err)

	env := &testEnv{
		ctx:       ctx,
		clock:     scheduler.NewManual(),
		repo:      repository.NewMemoryKeyValueRepository(),
		publisher: &testutil.RecordPublisher{},
		ad:        &testutil.MockAdDecisionCaller{},
	}

	env.deps = Dependencies{
		Registry:   registry,
		Repo:       env.repo,
		Scheduler:  env.clock,
		Publisher:  env.publisher,
		AdDecision: env.ad,
	}

	return env
}

func (env *testEnv) load(t *testing.T, userID string) *Session {
	s, err := Load(env.ctx, userID, env.deps, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func findTask(tasks []entity.Task, id string) (entity.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}

	return entity.Task{}, false
}

func requireBalance(t *testing.T, s *Session, diamonds uint64) {
	snapshot := s.Snapshot()
	require.Equal(t, diamonds, snapshot.DiamondBalance)

	// The currency balance never drifts from the diamond balance.
	expected := decimal.NewFromInt(int64(diamonds)).Div(decimal.NewFromInt(100))
	require.True(t, expected.Equal(snapshot.CurrencyBalance),
		"expected %s, got %s", expected, snapshot.CurrencyBalance)
}

func TestLoadDefaults(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	snapshot := s.Snapshot()
	require.Equal(t, uint64(0), snapshot.DiamondBalance)
	require.Equal(t, entity.CashoutIdle, snapshot.CashoutState)
	require.Len(t, snapshot.Referral.Code, 6)
	require.Nil(t, snapshot.RememberedPayout)

	seen := map[string]bool{}
	for _, task := range snapshot.Tasks {
		require.False(t, seen[task.ID], "duplicated task %s", task.ID)
		require.Equal(t, entity.TaskIncomplete, task.Status)
		seen[task.ID] = true
	}

	// The referral code is generated only once.
	again := env.load(t, "user1")
	require.Equal(t, snapshot.Referral.Code, again.Snapshot().Referral.Code)
}

func TestCompleteBasicTask(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	action, err := s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	require.Equal(t, lifecycle.Complete, action.Type)
	require.Equal(t, 300*time.Millisecond, action.Delay)

	task, _ := findTask(s.Snapshot().Tasks, "1")
	require.Equal(t, entity.TaskProcessing, task.Status)
	requireBalance(t, s, 0)

	// Requests while processing are ignored.
	action, err = s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	require.Equal(t, lifecycle.Ignore, action.Type)

	env.clock.Advance(299 * time.Millisecond)
	requireBalance(t, s, 0)

	env.clock.Advance(time.Millisecond)
	task, _ = findTask(s.Snapshot().Tasks, "1")
	require.Equal(t, entity.TaskCompleted, task.Status)
	requireBalance(t, s, 100)
	require.Equal(t, uint64(1), s.Snapshot().Revision)

	// And after completion as well.
	action, err = s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	require.Equal(t, lifecycle.Ignore, action.Type)
	env.clock.Advance(time.Second)
	requireBalance(t, s, 100)

	require.Len(t, env.publisher.Messages(common.RewardCreditedTopic), 1)
	require.Len(t, env.publisher.Messages(common.TaskCompletedTopic), 1)
}

func TestCompleteUnknownTask(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.RequestCompletion(env.ctx, "unknown")
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))
	require.Equal(t, 0, env.clock.Pending())
}

func TestCompleteAdTaskReplenishes(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	countIncompleteAds := func() int {
		n := 0
		for _, task := range s.Snapshot().Tasks {
			if task.Type == entity.TaskAd && task.Status == entity.TaskIncomplete {
				n++
			}
		}
		return n
	}

	before := countIncompleteAds()
	total := len(s.Snapshot().Tasks)

	action, err := s.RequestCompletion(env.ctx, "2")
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, action.Delay)

	env.clock.Advance(2 * time.Second)

	snapshot := s.Snapshot()
	_, found := findTask(snapshot.Tasks, "2")
	require.False(t, found)
	require.Len(t, snapshot.Tasks, total)
	require.Equal(t, before, countIncompleteAds())
	require.Equal(t, uint64(1), snapshot.AdsWatched)
	requireBalance(t, s, 250)

	replacement := snapshot.Tasks[len(snapshot.Tasks)-1]
	require.True(t, strings.HasPrefix(replacement.ID, taskregistry.AdTaskPrefix))
	require.Equal(t, entity.TaskAd, replacement.Type)
	require.Equal(t, entity.TaskIncomplete, replacement.Status)
	require.Equal(t, uint64(250), replacement.Reward)

	// The replacement is itself completable and replenished.
	_, err = s.RequestCompletion(env.ctx, replacement.ID)
	require.NoError(t, err)
	env.clock.Advance(2 * time.Second)

	snapshot = s.Snapshot()
	_, found = findTask(snapshot.Tasks, replacement.ID)
	require.False(t, found)
	require.Equal(t, before, countIncompleteAds())
	require.Equal(t, uint64(2), snapshot.AdsWatched)
	requireBalance(t, s, 500)
}

func TestAdTaskStaysReplacedAfterReload(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	countIncompleteAds := func(tasks []entity.Task) int {
		n := 0
		for _, task := range tasks {
			if task.Type == entity.TaskAd && task.Status == entity.TaskIncomplete {
				n++
			}
		}
		return n
	}

	before := countIncompleteAds(s.Snapshot().Tasks)
	total := len(s.Snapshot().Tasks)

	_, err := s.RequestCompletion(env.ctx, "2")
	require.NoError(t, err)
	env.clock.Advance(2 * time.Second)
	s.Close()

	again := env.load(t, "user1")
	snapshot := again.Snapshot()
	_, found := findTask(snapshot.Tasks, "2")
	require.False(t, found)
	require.Len(t, snapshot.Tasks, total)
	require.Equal(t, before, countIncompleteAds(snapshot.Tasks))
	requireBalance(t, again, 250)

	// The catalog ad comes back with the reset of a settled cashout.
	_, err = again.OnGameReward(env.ctx, 50000)
	require.NoError(t, err)
	_, err = again.RequestCashout(env.ctx)
	require.NoError(t, err)
	details := entity.PayoutDetails{Method: entity.PayoutUPI, UPI: &entity.UPIPayout{UPIID: "user@okbank"}}
	_, err = again.SubmitCashout(env.ctx, details, false)
	require.NoError(t, err)
	env.clock.Advance(2 * time.Second)
	again.Close()

	reset := env.load(t, "user1").Snapshot()
	task, found := findTask(reset.Tasks, "2")
	require.True(t, found)
	require.Equal(t, entity.TaskIncomplete, task.Status)
	require.Equal(t, before, countIncompleteAds(reset.Tasks))
}

func TestConcurrentCompletionsCommute(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	for _, id := range []string{"2", "1", "3"} {
		_, err := s.RequestCompletion(env.ctx, id)
		require.NoError(t, err)
	}

	env.clock.Advance(300 * time.Millisecond)
	requireBalance(t, s, 600)

	env.clock.Advance(2 * time.Second)
	requireBalance(t, s, 850)
}

func TestReferralApplication(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.RequestCompletion(env.ctx, entity.ReferralTaskID)
	require.NoError(t, err)
	env.clock.Advance(time.Second)

	snapshot := s.Snapshot()
	require.Equal(t, uint64(1), snapshot.Referral.Count)
	require.Equal(t, uint64(0), snapshot.Referral.CommissionEarned)
	requireBalance(t, s, 500)

	_, err = s.RequestCompletion(env.ctx, "6")
	require.NoError(t, err)
	env.clock.Advance(time.Second)

	snapshot = s.Snapshot()
	require.Equal(t, uint64(60), snapshot.Referral.CommissionEarned)
	requireBalance(t, s, 500+300+60)
}

func TestReferralCommission(t *testing.T) {
	env := newTestEnv(t)
	key := common.StateKey(xcontext.Configs(env.ctx).Storage.KeyPrefix, "user1", common.StateReferralCount)
	require.NoError(t, env.repo.Set(env.ctx, key, "2"))

	s := env.load(t, "user1")

	_, err := s.RequestCompletion(env.ctx, "4")
	require.NoError(t, err)
	env.clock.Advance(time.Second)

	requireBalance(t, s, 1200)
	require.Equal(t, uint64(200), s.Snapshot().Referral.CommissionEarned)
}

func TestNonTransitioningTasks(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	action, err := s.RequestCompletion(env.ctx, taskregistry.GameTaskID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.OpenGame, action.Type)

	action, err = s.RequestCompletion(env.ctx, taskregistry.OfferTaskID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.OpenOffer, action.Type)
	require.Equal(t, "install-jar-app", action.OfferID)

	// Below the minimum payout the withdraw task surfaces the error.
	action, err = s.RequestCompletion(env.ctx, taskregistry.WithdrawTaskID)
	require.ErrorIs(t, err, errorx.New(errorx.BelowThreshold, ""))
	require.Equal(t, lifecycle.StartCashout, action.Type)

	snapshot := s.Snapshot()
	for _, id := range []string{taskregistry.GameTaskID, taskregistry.OfferTaskID, taskregistry.WithdrawTaskID} {
		task, _ := findTask(snapshot.Tasks, id)
		require.Equal(t, entity.TaskIncomplete, task.Status)
	}
	require.Equal(t, entity.CashoutIdle, snapshot.CashoutState)
	requireBalance(t, s, 0)
	require.Equal(t, 0, env.clock.Pending())
}

func TestCompleteLinkTask(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	action, err := s.RequestCompletion(env.ctx, taskregistry.SupportTaskID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.OpenLink, action.Type)
	require.Equal(t, xcontext.Configs(env.ctx).Reward.ReferralBaseURL+taskregistry.SupportPath, action.Link)

	task, _ := findTask(s.Snapshot().Tasks, taskregistry.SupportTaskID)
	require.Equal(t, entity.TaskCompleted, task.Status)
	requireBalance(t, s, 50)
}

func TestWithdrawTaskOpensForm(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.OnGameReward(env.ctx, 50000)
	require.NoError(t, err)

	action, err := s.RequestCompletion(env.ctx, taskregistry.WithdrawTaskID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.StartCashout, action.Type)
	require.Equal(t, entity.CashoutFormOpen, s.Snapshot().CashoutState)
}

func TestOnGameReward(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	credited, err := s.OnGameReward(env.ctx, 120)
	require.NoError(t, err)
	require.Equal(t, uint64(120), credited)

	credited, err = s.OnGameReward(env.ctx, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), credited)

	requireBalance(t, s, 120)
	require.Equal(t, uint64(120), s.Snapshot().GameRewarded)

	// Game rewards do not produce commission.
	require.Equal(t, uint64(0), s.Snapshot().Referral.CommissionEarned)
}

func TestOnGameRewardCap(t *testing.T) {
	env := newTestEnv(t)
	cfg := xcontext.Configs(env.ctx)
	cfg.Reward.MaxGameRewardPerSession = 100
	env.ctx = xcontext.WithConfigs(env.ctx, cfg)

	s := env.load(t, "user1")

	credited, err := s.OnGameReward(env.ctx, 60)
	require.NoError(t, err)
	require.Equal(t, uint64(60), credited)

	credited, err = s.OnGameReward(env.ctx, 60)
	require.NoError(t, err)
	require.Equal(t, uint64(40), credited)

	credited, err = s.OnGameReward(env.ctx, 60)
	require.NoError(t, err)
	require.Equal(t, uint64(0), credited)

	requireBalance(t, s, 100)
}

func TestRequestCashoutBelowThreshold(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.OnGameReward(env.ctx, 49999)
	require.NoError(t, err)
	revision := s.Snapshot().Revision

	_, err = s.RequestCashout(env.ctx)
	require.ErrorIs(t, err, errorx.New(errorx.BelowThreshold, ""))

	snapshot := s.Snapshot()
	require.Equal(t, entity.CashoutIdle, snapshot.CashoutState)
	require.Equal(t, revision, snapshot.Revision)
	requireBalance(t, s, 49999)

	_, err = s.SubmitCashout(env.ctx, entity.PayoutDetails{
		Method: entity.PayoutUPI, UPI: &entity.UPIPayout{UPIID: "a@b"},
	}, false)
	require.ErrorIs(t, err, errorx.New(errorx.InvalidState, ""))
}

func TestCashoutScenario(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.RequestCompletion(env.ctx, entity.ReferralTaskID)
	require.NoError(t, err)
	env.clock.Advance(time.Second)

	_, err = s.OnGameReward(env.ctx, 59500)
	require.NoError(t, err)
	requireBalance(t, s, 60000)
	require.True(t, s.Snapshot().Eligible)

	prefill, err := s.RequestCashout(env.ctx)
	require.NoError(t, err)
	require.Nil(t, prefill)
	require.Equal(t, entity.CashoutFormOpen, s.Snapshot().CashoutState)

	details := entity.PayoutDetails{Method: entity.PayoutUPI, UPI: &entity.UPIPayout{UPIID: "user@okbank"}}
	tx, err := s.SubmitCashout(env.ctx, details, true)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(600).Equal(tx.Amount))
	require.Equal(t, entity.CashoutProcessing, s.Snapshot().CashoutState)

	pending := s.Snapshot().PendingCashout
	require.NotNil(t, pending)
	require.Equal(t, tx.ID, pending.ID)
	require.Equal(t, uint64(60000), pending.Diamonds)

	// A credit landing during the settlement delay is kept, with its
	// commission.
	_, err = s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	env.clock.Advance(300 * time.Millisecond)
	requireBalance(t, s, 60120)

	// Cancel is refused while processing.
	require.ErrorIs(t, s.CancelCashout(env.ctx), errorx.New(errorx.InvalidState, ""))

	env.clock.Advance(2 * time.Second)

	snapshot := s.Snapshot()
	require.Equal(t, entity.CashoutIdle, snapshot.CashoutState)
	require.Nil(t, snapshot.PendingCashout)
	require.True(t, decimal.NewFromInt(600).Equal(snapshot.LifetimeEarnings))
	requireBalance(t, s, 120)
	require.Equal(t, uint64(1), snapshot.Referral.Count)
	require.Equal(t, uint64(0), snapshot.Referral.CommissionEarned)
	require.Equal(t, details, *snapshot.RememberedPayout)

	for _, task := range snapshot.Tasks {
		require.Equal(t, entity.TaskIncomplete, task.Status)
	}

	require.Len(t, env.publisher.Messages(common.CashoutSettledTopic), 1)

	// Referrals still pay commission after the payout.
	_, err = s.RequestCompletion(env.ctx, "4")
	require.NoError(t, err)
	env.clock.Advance(300 * time.Millisecond)
	requireBalance(t, s, 1320)
	require.Equal(t, uint64(200), s.Snapshot().Referral.CommissionEarned)

	// The remembered details survive a reload.
	again := env.load(t, "user1")
	require.Equal(t, details, *again.Snapshot().RememberedPayout)
	require.True(t, decimal.NewFromInt(600).Equal(again.Snapshot().LifetimeEarnings))
}

func TestCashoutForgetDetails(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	details := entity.PayoutDetails{Method: entity.PayoutPayPal, PayPal: &entity.PayPalPayout{Email: "a@b.com"}}
	for _, remember := range []bool{true, false} {
		_, err := s.OnGameReward(env.ctx, 50000)
		require.NoError(t, err)

		_, err = s.RequestCashout(env.ctx)
		require.NoError(t, err)

		_, err = s.SubmitCashout(env.ctx, details, remember)
		require.NoError(t, err)
		env.clock.Advance(2 * time.Second)
	}

	require.Nil(t, s.Snapshot().RememberedPayout)
	require.Nil(t, env.load(t, "user1").Snapshot().RememberedPayout)
}

func TestCancelCashout(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.OnGameReward(env.ctx, 50000)
	require.NoError(t, err)

	_, err = s.RequestCashout(env.ctx)
	require.NoError(t, err)
	require.NoError(t, s.CancelCashout(env.ctx))
	require.Equal(t, entity.CashoutIdle, s.Snapshot().CashoutState)
	requireBalance(t, s, 50000)
}

func TestSurpriseBonusWithoutAd(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	var got addecision.Request
	env.ad.DecideFunc = func(ctx context.Context, req addecision.Request) (addecision.Decision, error) {
		got = req
		return addecision.Decision{ShowAd: false, Reason: "no"}, nil
	}

	bonus, err := s.SurpriseBonus(env.ctx)
	require.NoError(t, err)
	require.False(t, bonus.ShowAd)
	require.GreaterOrEqual(t, bonus.Amount, uint64(10))
	require.Less(t, bonus.Amount, uint64(60))
	requireBalance(t, s, bonus.Amount)

	require.Equal(t, addecision.FrequencyLow, got.AdFrequency)
	require.Equal(t, uint64(0), got.CoinBalance)
	require.Equal(t, uint64(0), s.Snapshot().AdsShown)
}

func TestSurpriseBonusWithAd(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	var frequencies []addecision.Frequency
	env.ad.DecideFunc = func(ctx context.Context, req addecision.Request) (addecision.Decision, error) {
		frequencies = append(frequencies, req.AdFrequency)
		return addecision.Decision{ShowAd: true, Reason: "yes"}, nil
	}

	var total uint64
	for i := 0; i < 5; i++ {
		bonus, err := s.SurpriseBonus(env.ctx)
		require.NoError(t, err)
		require.True(t, bonus.ShowAd)
		require.Equal(t, 3*time.Second, bonus.Delay)
		require.GreaterOrEqual(t, bonus.Amount, uint64(50))
		require.Less(t, bonus.Amount, uint64(250))
		total += bonus.Amount
	}

	requireBalance(t, s, 0)
	require.Equal(t, uint64(5), s.Snapshot().AdsShown)
	require.Equal(t, []addecision.Frequency{
		addecision.FrequencyLow, addecision.FrequencyLow,
		addecision.FrequencyMedium, addecision.FrequencyMedium, addecision.FrequencyMedium,
	}, frequencies)

	env.clock.Advance(3 * time.Second)
	requireBalance(t, s, total)
}

func TestSurpriseBonusAdServiceError(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	env.ad.DecideFunc = func(ctx context.Context, req addecision.Request) (addecision.Decision, error) {
		return addecision.Decision{}, errors.New("unavailable")
	}

	_, err := s.SurpriseBonus(env.ctx)
	require.ErrorIs(t, err, errorx.New(errorx.AdServiceError, ""))
	requireBalance(t, s, 0)
	require.Equal(t, uint64(0), s.Snapshot().Revision)
	require.Equal(t, 0, env.clock.Pending())
}

func TestClaimOffer(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	require.Equal(t, entity.OfferUnclaimed, s.OfferStatus("install-jar-app"))

	link, err := s.ClaimOffer(env.ctx, "install-jar-app")
	require.NoError(t, err)
	require.NotEmpty(t, link)
	require.Equal(t, entity.OfferPending, s.OfferStatus("install-jar-app"))

	_, err = s.ClaimOffer(env.ctx, "unknown")
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	require.Equal(t, entity.OfferPending, env.load(t, "user1").OfferStatus("install-jar-app"))
	requireBalance(t, s, 0)
}

func TestCloseDropsPendingCallbacks(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 1, env.clock.Pending())

	s.Close()
	require.Equal(t, 0, env.clock.Pending())

	env.clock.Advance(time.Second)
	requireBalance(t, s, 0)

	_, err = s.RequestCompletion(env.ctx, "3")
	require.ErrorIs(t, err, errorx.New(errorx.Unavailable, ""))
}

func TestReloadState(t *testing.T) {
	env := newTestEnv(t)
	s := env.load(t, "user1")

	_, err := s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	env.clock.Advance(time.Second)

	// Left processing, the completion is lost with the session.
	_, err = s.RequestCompletion(env.ctx, "3")
	require.NoError(t, err)
	s.Close()

	again := env.load(t, "user1")
	snapshot := again.Snapshot()
	require.Equal(t, uint64(100), snapshot.DiamondBalance)

	task, _ := findTask(snapshot.Tasks, "1")
	require.Equal(t, entity.TaskCompleted, task.Status)

	task, _ = findTask(snapshot.Tasks, "3")
	require.Equal(t, entity.TaskIncomplete, task.Status)

	// Other users are independent.
	require.Equal(t, uint64(0), env.load(t, "user2").Snapshot().DiamondBalance)
}

func TestListener(t *testing.T) {
	env := newTestEnv(t)

	var revisions []uint64
	s, err := Load(env.ctx, "user1", env.deps, func(ctx context.Context, snapshot Snapshot) {
		revisions = append(revisions, snapshot.Revision)
	})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.RequestCompletion(env.ctx, "1")
	require.NoError(t, err)
	env.clock.Advance(time.Second)

	require.Equal(t, []uint64{0, 1}, revisions)
}
