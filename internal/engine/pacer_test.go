package engine

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tokens", func() {
	It("starts at zero and issues increasing tokens", func() {
		var tokens Tokens
		Expect(tokens.Current()).To(BeZero())

		a := tokens.Issue()
		b := tokens.Issue()
		Expect(b).To(BeNumerically(">", a))
		Expect(tokens.IsCurrent(a)).To(BeFalse())
		Expect(tokens.IsCurrent(b)).To(BeTrue())
	})
})

var _ = Describe("Settings", func() {
	It("clamps size and delay instead of rejecting them", func() {
		s := NewSettings(1000, time.Hour)
		Expect(s.Size()).To(Equal(MaxSize))
		Expect(s.Delay()).To(Equal(MaxDelay))

		s.SetSize(-3)
		s.SetDelay(0)
		Expect(s.Size()).To(Equal(MinSize))
		Expect(s.Delay()).To(Equal(MinDelay))
	})

	It("toggles pause", func() {
		s := DefaultSettings()
		Expect(s.TogglePaused()).To(BeTrue())
		Expect(s.Paused()).To(BeTrue())
		Expect(s.TogglePaused()).To(BeFalse())
	})
})

var _ = Describe("Pacer", func() {
	var (
		tokens   *Tokens
		settings *Settings
		pacer    *Pacer
		mu       sync.Mutex
		slept    []time.Duration
	)

	recordSleep := func(extra func(time.Duration)) func(time.Duration) {
		return func(d time.Duration) {
			mu.Lock()
			slept = append(slept, d)
			mu.Unlock()
			if extra != nil {
				extra(d)
			}
		}
	}

	BeforeEach(func() {
		tokens = &Tokens{}
		settings = NewSettings(10, 5*time.Millisecond)
		pacer = NewPacer(tokens, settings)
		pacer.PollInterval = time.Millisecond
		slept = nil
	})

	It("continues while the token is current", func() {
		pacer.sleep = recordSleep(nil)
		tok := tokens.Issue()

		Expect(pacer.AwaitStep(tok)).To(BeTrue())
		Expect(slept).To(Equal([]time.Duration{5 * time.Millisecond}))
	})

	It("aborts without sleeping when the token is already stale", func() {
		pacer.sleep = recordSleep(nil)
		tok := tokens.Issue()
		tokens.Issue()

		Expect(pacer.AwaitStep(tok)).To(BeFalse())
		Expect(slept).To(BeEmpty())
	})

	It("aborts when superseded during the delay", func() {
		tok := tokens.Issue()
		pacer.sleep = recordSleep(func(time.Duration) { tokens.Issue() })

		Expect(pacer.AwaitStep(tok)).To(BeFalse())
	})

	It("reads the delay once per call", func() {
		tok := tokens.Issue()
		pacer.sleep = recordSleep(func(time.Duration) {
			settings.SetDelay(9 * time.Millisecond)
		})

		Expect(pacer.AwaitStep(tok)).To(BeTrue())
		Expect(pacer.AwaitStep(tok)).To(BeTrue())
		Expect(slept).To(Equal([]time.Duration{5 * time.Millisecond, 9 * time.Millisecond}))
	})

	It("holds while paused and resumes when pause clears", func() {
		tok := tokens.Issue()
		settings.SetPaused(true)

		done := make(chan bool, 1)
		go func() { done <- pacer.AwaitStep(tok) }()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
		settings.SetPaused(false)
		Eventually(done).Should(Receive(BeTrue()))
	})

	It("aborts a paused wait when the run is superseded", func() {
		tok := tokens.Issue()
		settings.SetPaused(true)

		done := make(chan bool, 1)
		go func() { done <- pacer.AwaitStep(tok) }()

		Consistently(done, 20*time.Millisecond).ShouldNot(Receive())
		tokens.Issue()
		Eventually(done).Should(Receive(BeFalse()))
		Expect(settings.Paused()).To(BeTrue())
	})
})
