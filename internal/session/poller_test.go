package session

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/wolfgoatpig/internal/decision"
	"github.com/lox/wolfgoatpig/internal/game"
	"github.com/lox/wolfgoatpig/internal/simtest"
)

func TestPollOnceRecordsPokerState(t *testing.T) {
	h := newHarness(t)
	h.start(t, game.NewTestSession())

	h.srv.Enqueue(decision.OpPokerState, game.PokerState{PotSize: 4, BaseBet: 1, CurrentBet: 2, BettingPhase: "doubled", Doubled: true, PlayersIn: []string{"p1", "p2"}})

	p := NewPoller(h.ctrl, quartz.NewReal(), time.Second, simtest.QuietLogger())
	p.PollOnce(context.Background())

	st := h.ctrl.State()
	require.NotNil(t, st.Poker)
	assert.Equal(t, 4, st.Poker.PotSize)
	assert.True(t, st.Poker.Doubled)
	assert.Equal(t, []string{"p1", "p2"}, st.Poker.PlayersIn)
}

func TestPollOnceWithoutSession(t *testing.T) {
	h := newHarness(t)

	p := NewPoller(h.ctrl, quartz.NewReal(), time.Second, simtest.QuietLogger())
	p.PollOnce(context.Background())

	assert.Zero(t, h.srv.Count(decision.OpPokerState))
}

func TestPollOnceFailureLeavesStateAlone(t *testing.T) {
	h := newHarness(t)
	before := h.start(t, game.NewTestSession())

	// no scripted reply means a 500
	p := NewPoller(h.ctrl, quartz.NewReal(), time.Second, simtest.QuietLogger())
	p.PollOnce(context.Background())

	st := h.ctrl.State()
	assert.Nil(t, st.Poker)
	assert.Equal(t, before.Feedback, st.Feedback, "poll failures are not surfaced")
}

func TestPollerDoesNotTakeInFlightFlag(t *testing.T) {
	h := newHarness(t)
	h.start(t, captainReady())

	release := h.srv.Hold(decision.OpPlayHole)
	defer release()
	h.srv.Enqueue(decision.OpPlayHole, simtest.OK(captainReady()))

	done := make(chan error, 1)
	go func() { done <- h.ctrl.SubmitDecision(context.Background(), decision.NewKeepWatching()) }()
	require.True(t, h.srv.WaitFor(decision.OpPlayHole, 2*time.Second))

	h.srv.Enqueue(decision.OpPokerState, game.PokerState{PotSize: 8})
	p := NewPoller(h.ctrl, quartz.NewReal(), time.Second, simtest.QuietLogger())
	p.PollOnce(context.Background())
	assert.True(t, h.ctrl.busy())

	release()
	require.NoError(t, <-done)

	st := h.ctrl.State()
	require.NotNil(t, st.Poker, "poll result survives the decision commit")
	assert.Equal(t, 8, st.Poker.PotSize)
}

func TestPollerRunsOnInterval(t *testing.T) {
	h := newHarness(t)
	h.start(t, game.NewTestSession())
	h.srv.SetFallback(decision.OpPokerState, game.PokerState{PotSize: 2, BaseBet: 1, CurrentBet: 1})

	mClock := quartz.NewMock(t)
	p := NewPoller(h.ctrl, mClock, 2*time.Second, simtest.QuietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool {
		waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
		defer waitCancel()
		mClock.Advance(2 * time.Second).MustWait(waitCtx)
		return h.srv.Count(decision.OpPokerState) >= 2
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, h.ctrl.State().Poker.PotSize)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}
