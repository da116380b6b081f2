package engine

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/sorting"
)

type frameLog struct {
	BaseObserver
	mu     sync.Mutex
	frames []sorting.Frame
	at     []time.Time
	ends   []Result
}

func (l *frameLog) OnFrame(f sorting.Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, f)
	l.at = append(l.at, time.Now())
}

// since returns the frames published after t with their publish times.
func (l *frameLog) since(t time.Time) ([]sorting.Frame, []time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var frames []sorting.Frame
	var at []time.Time
	for i, ts := range l.at {
		if ts.After(t) {
			frames = append(frames, l.frames[i])
			at = append(at, ts)
		}
	}
	return frames, at
}

func (l *frameLog) OnRunEnd(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ends = append(l.ends, r)
}

func (l *frameLog) tokens() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]uint64, len(l.frames))
	for i, f := range l.frames {
		out[i] = f.Token
	}
	return out
}

func (l *frameLog) endCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ends)
}

func startAsync(c *Controller, alg sorting.Algorithm) <-chan Result {
	out := make(chan Result, 1)
	go func() { out <- c.OnStart(context.Background(), alg) }()
	return out
}

var _ = Describe("Controller", func() {
	var (
		settings *Settings
		ctrl     *Controller
		log      *frameLog
	)

	BeforeEach(func() {
		settings = NewSettings(10, time.Millisecond)
		ctrl = New(settings, Options{Seed: 42, PollInterval: time.Millisecond})
		log = &frameLog{}
		ctrl.AddObserver(log)
	})

	It("starts idle with a generated array", func() {
		Expect(ctrl.State()).To(Equal(Idle))
		Expect(ctrl.Locked()).To(BeFalse())
		Expect(ctrl.Frame().Values).To(HaveLen(10))
		for _, v := range ctrl.Frame().Values {
			Expect(v).To(BeNumerically(">=", sorting.MinValue))
			Expect(v).To(BeNumerically("<=", sorting.MaxValue))
		}
	})

	It("sorts [5 3 8 1] with bubble sort", func() {
		Expect(ctrl.OnLoad([]int{5, 3, 8, 1})).To(BeTrue())

		res := ctrl.OnStart(context.Background(), sorting.Bubble)

		Expect(res.Outcome).To(Equal(sorting.Completed))
		Expect(res.Final).To(Equal([]int{1, 3, 5, 8}))
		Expect(res.Initial).To(Equal([]int{5, 3, 8, 1}))
		Expect(ctrl.Frame().Highlight.SortedSuffix).To(Equal(4))
		Expect(ctrl.State()).To(Equal(Idle))
		Expect(ctrl.Locked()).To(BeFalse())
		Expect(log.endCount()).To(Equal(1))
	})

	It("sorts [2 1] with insertion sort using one shift", func() {
		ctrl.OnLoad([]int{2, 1})

		res := ctrl.OnStart(context.Background(), sorting.Insertion)

		Expect(res.Outcome).To(Equal(sorting.Completed))
		Expect(res.Final).To(Equal([]int{1, 2}))
		Expect(res.Stats.Writes).To(Equal(1))
	})

	It("leaves a sorted permutation after every completed run", func() {
		for _, alg := range sorting.Algorithms() {
			ctrl.OnGenerate()
			res := ctrl.OnStart(context.Background(), alg)
			Expect(res.Outcome).To(Equal(sorting.Completed))
			Expect(sorting.IsSorted(res.Final)).To(BeTrue())
			Expect(sorting.IsPermutation(res.Initial, res.Final)).To(BeTrue())
		}
	})

	It("locks the controls while running and rejects a second start", func() {
		settings.SetDelay(20 * time.Millisecond)
		done := startAsync(ctrl, sorting.Bubble)
		Eventually(ctrl.State).Should(Equal(Running))

		Expect(ctrl.Locked()).To(BeTrue())
		Expect(ctrl.OnGenerate()).To(BeFalse())
		Expect(ctrl.OnAlgorithmChange(sorting.Insertion)).To(BeFalse())
		Expect(ctrl.OnStart(context.Background(), sorting.Insertion).Outcome).To(Equal(sorting.Rejected))

		settings.SetDelay(time.Millisecond)
		Eventually(done, 5*time.Second).Should(Receive(HaveField("Outcome", sorting.Completed)))
		Expect(ctrl.Locked()).To(BeFalse())
	})

	It("pauses and resumes without touching the token", func() {
		settings.SetDelay(5 * time.Millisecond)
		done := startAsync(ctrl, sorting.Bubble)
		Eventually(func() int { return ctrl.Frame().Step }).Should(BeNumerically(">", 0))

		tok := ctrl.Tokens().Current()
		Expect(ctrl.OnPauseToggle()).To(BeTrue())
		Expect(ctrl.State()).To(Equal(Paused))

		// let an in-flight delay drain, then progress must stop
		time.Sleep(20 * time.Millisecond)
		step := ctrl.Frame().Step
		Consistently(func() int { return ctrl.Frame().Step }, 60*time.Millisecond).Should(Equal(step))
		Expect(ctrl.Tokens().Current()).To(Equal(tok))

		Expect(ctrl.OnPauseToggle()).To(BeFalse())
		Eventually(done, 5*time.Second).Should(Receive(HaveField("Outcome", sorting.Completed)))
	})

	It("treats an even number of pause toggles as a no-op", func() {
		settings.SetDelay(5 * time.Millisecond)
		done := startAsync(ctrl, sorting.Insertion)
		Eventually(ctrl.State).Should(Equal(Running))

		tok := ctrl.Tokens().Current()
		for i := 0; i < 4; i++ {
			ctrl.OnPauseToggle()
		}
		toggled := time.Now()
		step := ctrl.Frame().Step
		Expect(settings.Paused()).To(BeFalse())
		Expect(ctrl.State()).To(Equal(Running))
		Expect(ctrl.Tokens().Current()).To(Equal(tok))

		Eventually(func() int { return ctrl.Frame().Step }, 200*time.Millisecond, time.Millisecond).Should(BeNumerically(">", step))

		var res Result
		Eventually(done, 5*time.Second).Should(Receive(&res))
		Expect(res.Outcome).To(Equal(sorting.Completed))

		frames, at := log.since(toggled)
		Expect(frames).NotTo(BeEmpty())
		Expect(frames[len(frames)-1].Highlight.SortedSuffix).To(Equal(10))
		// the delay plus scheduling slack; a lingering pause would stall far longer
		maxGap := settings.Delay() + 45*time.Millisecond
		for i := 1; i < len(frames); i++ {
			Expect(frames[i].Step).To(BeNumerically(">", frames[i-1].Step))
			Expect(at[i].Sub(at[i-1])).To(BeNumerically("<", maxGap))
		}
	})

	It("ignores pause toggles while idle", func() {
		Expect(ctrl.OnPauseToggle()).To(BeFalse())
		Expect(ctrl.State()).To(Equal(Idle))
	})

	It("stops mutating a run's array once it is reset", func() {
		settings.SetSize(60)
		ctrl.OnGenerate()
		settings.SetDelay(10 * time.Millisecond)

		ctrl.mu.Lock()
		old := ctrl.arr
		ctrl.mu.Unlock()

		done := startAsync(ctrl, sorting.Bubble)
		Eventually(func() int { return ctrl.Frame().Step }).Should(BeNumerically(">", 3))

		ctrl.OnReset()
		atReset := old.Snapshot()

		var res Result
		Eventually(done).Should(Receive(&res))
		Expect(res.Outcome).To(Equal(sorting.Aborted))
		Expect(res.Final).To(Equal(atReset))
		Expect(old.Snapshot()).To(Equal(atReset))

		ctrl.mu.Lock()
		fresh := ctrl.arr
		ctrl.mu.Unlock()
		Expect(fresh).NotTo(BeIdenticalTo(old))
		Expect(ctrl.State()).To(Equal(Idle))
		Expect(ctrl.Locked()).To(BeFalse())
	})

	It("never publishes frames from a superseded run", func() {
		settings.SetDelay(10 * time.Millisecond)
		done := startAsync(ctrl, sorting.Bubble)
		Eventually(func() int { return ctrl.Frame().Step }).Should(BeNumerically(">", 0))
		staleTok := ctrl.Frame().Token

		ctrl.OnReset()
		resetTok := ctrl.Tokens().Current()
		Eventually(done).Should(Receive())

		seen := log.tokens()
		idx := -1
		for i, tok := range seen {
			if tok == resetTok {
				idx = i
				break
			}
		}
		Expect(idx).To(BeNumerically(">=", 0))
		Expect(seen[idx:]).NotTo(ContainElement(staleTok))
		Expect(log.endCount()).To(BeZero())
	})

	It("suppresses the completion of a stale run", func() {
		settings.SetDelay(30 * time.Millisecond)
		first := startAsync(ctrl, sorting.Bubble)
		Eventually(ctrl.State).Should(Equal(Running))

		ctrl.OnReset()
		second := startAsync(ctrl, sorting.Insertion)
		Eventually(ctrl.Locked).Should(BeTrue())
		ctrl.OnPauseToggle()

		Eventually(first).Should(Receive(HaveField("Outcome", sorting.Aborted)))
		Expect(ctrl.Locked()).To(BeTrue())
		Expect(ctrl.State()).To(Equal(Paused))
		Expect(log.endCount()).To(BeZero())

		settings.SetDelay(time.Millisecond)
		ctrl.OnPauseToggle()
		Eventually(second, 5*time.Second).Should(Receive(HaveField("Outcome", sorting.Completed)))
		Expect(ctrl.Locked()).To(BeFalse())
		Expect(log.endCount()).To(Equal(1))
	})

	It("supersedes the run when its context is cancelled", func() {
		settings.SetDelay(10 * time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		out := make(chan Result, 1)
		go func() { out <- ctrl.OnStart(ctx, sorting.Bubble) }()
		Eventually(ctrl.State).Should(Equal(Running))

		cancel()

		Eventually(out).Should(Receive(HaveField("Outcome", sorting.Aborted)))
		Expect(ctrl.State()).To(Equal(Idle))
		Expect(ctrl.Locked()).To(BeFalse())
	})

	It("regenerates on size change only while idle", func() {
		ctrl.OnSizeChange(25)
		Expect(ctrl.Frame().Values).To(HaveLen(25))

		ctrl.OnSizeChange(500)
		Expect(ctrl.Frame().Values).To(HaveLen(MaxSize))
	})

	It("clamps speed changes", func() {
		ctrl.OnSpeedChange(-time.Second)
		Expect(settings.Delay()).To(Equal(MinDelay))
	})
})
