package lighting

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/frontporchlabs/rooflights/internal/clock"
	"github.com/frontporchlabs/rooflights/internal/events"
	"github.com/frontporchlabs/rooflights/internal/metrics"
	"github.com/frontporchlabs/rooflights/internal/settings"
	"github.com/frontporchlabs/rooflights/internal/transformer"
)

// Output receives one composited frame per tick. Satisfied by the led
// package's strip outputs.
type Output interface {
	Flush(frame []color.NRGBA) error
}

type discardOutput struct{}

func (discardOutput) Flush([]color.NRGBA) error { return nil }

// DiscardOutput returns an Output that drops every frame. Useful when a
// controller is wired without display hardware.
func DiscardOutput() Output {
	return discardOutput{}
}

// Named timers owned by the controller.
const (
	lateNightTimer = "late-night-timeout"
	motionTimer    = "motion-cooldown"
	duskTimer      = "dusk-lux"
	lateNightAlarm = "late-night-alarm"
)

const (
	// DefaultTickInterval drives animation and gesture timeout checks.
	DefaultTickInterval = 50 * time.Millisecond
	// DefaultCyclePeriod is how long each pattern holds in cycle mode.
	DefaultCyclePeriod = 4 * time.Second
	// DefaultTestSweepPPS is the test-pattern chase speed in pixels/sec.
	DefaultTestSweepPPS = 100.0

	duskLogInterval = 15 * time.Minute
	duskLogWindow   = time.Hour
)

// Config tunes the controller's timing and geometry.
type Config struct {
	Layout        Layout
	TickInterval  time.Duration
	CyclePeriod   time.Duration
	TestSweepPPS  float64
	GestureWindow time.Duration
}

func (c *Config) withDefaults() {
	if c.Layout.LEDCount() == 0 {
		c.Layout = DefaultLayout
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.CyclePeriod <= 0 {
		c.CyclePeriod = DefaultCyclePeriod
	}
	if c.TestSweepPPS <= 0 {
		c.TestSweepPPS = DefaultTestSweepPPS
	}
	if c.GestureWindow <= 0 {
		c.GestureWindow = DefaultGestureWindow
	}
}

// Options wires the controller's collaborators.
type Options struct {
	Config    Config
	Settings  *settings.Store
	Bus       *events.Bus
	Relay     gpio.PinIO
	Output    Output
	Sun       clock.SunProvider
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	Scheduler clock.Scheduler // nil selects the production timer scheduler
}

// Controller is the decision layer: it fuses gesture, clock, motion and
// ambient-light inputs into one consistent lighting output. All mutable
// state is owned by the controller and touched only on its own loop;
// external callers go through Do.
type Controller struct {
	cfg    Config
	store  *settings.Store
	bus    *events.Bus
	sched  clock.Scheduler
	xfmr   *transformer.Sequencer
	out    Output
	sun    clock.SunProvider
	met    *metrics.Metrics
	logger *slog.Logger

	mode       ViewMode
	timeOfDay  TimeOfDay
	lightsOn   bool
	motionTrip bool
	luxTrigger bool
	haveLux    bool
	lastLux    float64

	patterns []Pattern
	active   *Pattern
	decoder  GestureDecoder

	cycleIdx int
	cycleAt  time.Time
	testPos  float64

	duskStart time.Time

	frame []RGB
	pix   []color.NRGBA

	ops   chan func()
	unsub []func()
}

// New creates a controller in Normal mode with the transformer off.
// Call Bootstrap to seed the initial state, Start to subscribe to the
// bus, and Run to process events.
func New(opts *Options) *Controller {
	cfg := opts.Config
	cfg.withDefaults()

	n := cfg.Layout.LEDCount()
	c := &Controller{
		cfg:      cfg,
		store:    opts.Settings,
		bus:      opts.Bus,
		out:      opts.Output,
		sun:      opts.Sun,
		met:      opts.Metrics,
		logger:   opts.Logger,
		mode:     Normal,
		patterns: Patterns(cfg.Layout.PanelSize),
		decoder:  NewGestureDecoder(cfg.GestureWindow),
		frame:    make([]RGB, n),
		pix:      make([]color.NRGBA, n),
		ops:      make(chan func(), 64),
	}

	c.sched = opts.Scheduler
	if c.sched == nil {
		c.sched = clock.NewTimers(c.Dispatch, opts.Logger)
	}

	c.xfmr = transformer.New(opts.Relay, c.sched, c.blankAndFlush, opts.Logger, c.transformerChanged)
	return c
}

// Transformer exposes the power sequencer for diagnostics.
func (c *Controller) Transformer() *transformer.Sequencer {
	return c.xfmr
}

// Dispatch queues fn onto the controller loop without waiting.
func (c *Controller) Dispatch(fn func()) {
	c.ops <- fn
}

// Do runs fn on the controller loop and waits for it to finish. It is
// the only safe way for other goroutines to touch controller state.
func (c *Controller) Do(fn func()) {
	done := make(chan struct{})
	c.ops <- func() {
		fn()
		close(done)
	}
	<-done
}

// Start subscribes to the event bus and arms the daily late-night alarm.
// The returned unsubscription happens in Stop.
func (c *Controller) Start() {
	c.unsub = append(c.unsub,
		c.bus.Subscribe(func(events.ButtonPressedEvent) {
			c.Dispatch(func() { c.handleButtonPress(c.sched.Now()) })
		}),
		c.bus.Subscribe(func(e events.MotionEvent) {
			c.Dispatch(func() { c.handleMotion(e.Active) })
		}),
		c.bus.Subscribe(func(e events.LuxSampleEvent) {
			c.Dispatch(func() { c.handleLux(e.Lux) })
		}),
		c.bus.Subscribe(func(events.SunriseEvent) {
			c.Dispatch(c.handleSunrise)
		}),
		c.bus.Subscribe(func(events.SunsetEvent) {
			c.Dispatch(c.handleSunset)
		}),
		c.bus.Subscribe(func(events.LateNightAlarmEvent) {
			c.Dispatch(c.handleLateNightAlarm)
		}),
	)
	c.armLateNightAlarm()
	c.logger.Info("Lighting controller started")
}

// Stop unsubscribes from the bus.
func (c *Controller) Stop() {
	for _, u := range c.unsub {
		u()
	}
	c.unsub = nil
	c.logger.Info("Lighting controller stopped")
}

// Run processes queued events and drives periodic ticks until the
// context is canceled. Everything the controller does happens here, so
// no locking is needed anywhere in the core.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	last := c.sched.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-c.ops:
			fn()
		case <-ticker.C:
			now := c.sched.Now()
			c.Tick(now, now.Sub(last))
			last = now
		}
	}
}

// Bootstrap seeds time of day, the on/off flag, the transformer, and the
// active pattern from the current clock and sun times. The transformer
// is seeded directly, without warm-up, because it reflects a state the
// hardware is assumed to already be in.
func (c *Controller) Bootstrap(now time.Time) {
	sunrise, sunset := c.sun.SunTimes(now.Year(), now.Month(), now.Day())
	s := c.store.Get()
	lateNight := time.Date(now.Year(), now.Month(), now.Day(),
		s.LateNightHour, s.LateNightMinute, 0, 0, now.Location())

	switch {
	case now.After(sunset) || now.Before(sunrise):
		if now.After(lateNight) || now.Before(sunrise) {
			c.timeOfDay = LateNight
		} else {
			c.timeOfDay = Night
		}
	default:
		c.timeOfDay = Day
	}

	c.lightsOn = c.timeOfDay == Night
	c.xfmr.Seed(c.timeOfDay != Day)
	if c.lightsOn {
		c.reselectPattern()
	}

	c.logger.Info("Initial state seeded",
		"time_of_day", c.timeOfDay.String(),
		"sunrise", sunrise.Format(time.Kitchen),
		"sunset", sunset.Format(time.Kitchen),
		"lights_on", c.lightsOn)
}

// Tick runs one frame: gesture timeout detection, then rendering. The
// LEDs are only driven while the transformer is fully powered.
func (c *Controller) Tick(now time.Time, dt time.Duration) {
	if count, ok := c.decoder.Tick(now); ok {
		c.handleGesture(count)
	}

	if !c.xfmr.Powered() {
		return
	}

	switch c.mode {
	case Normal:
		c.renderNormal()
	case CyclePatterns:
		c.renderCycle(now)
	case TestPattern:
		c.renderTest(dt)
	}
	c.flush()
}

// --- gesture handling ---

func (c *Controller) handleButtonPress(now time.Time) {
	c.decoder.Press(now)
	c.logger.Debug("Button press counted", "pending", c.decoder.Pending())
}

// Gesture press counts and their meanings.
const (
	gestureToggle        = 1
	gestureSimulateTrip  = 2
	gestureCyclePatterns = 3
	gestureTestPattern   = 4
)

func (c *Controller) handleGesture(count int) {
	if c.met != nil {
		c.met.GesturesTotal.WithLabelValues(gestureLabel(count)).Inc()
	}

	// Outside Normal mode, any gesture is an exit back to Normal. During
	// Day the transformer follows, as on the command path.
	if c.mode != Normal {
		if c.timeOfDay == Day {
			c.xfmr.Request(false)
		}
		c.lightsOn = false
		c.setMode(Normal)
		c.reselectPattern()
		return
	}

	switch count {
	case gestureToggle:
		c.toggle()
	case gestureSimulateTrip:
		// Diagnostic: a fake motion pulse, trip then immediate release.
		c.handleMotion(true)
		c.handleMotion(false)
	case gestureCyclePatterns:
		c.logger.Info("Entering pattern cycling")
		c.setMode(CyclePatterns)
		c.lightsOn = true
		c.active = nil
		c.cycleAt = time.Time{}
		c.xfmr.Request(true)
	case gestureTestPattern:
		c.logger.Info("Entering test pattern")
		c.setMode(TestPattern)
		c.lightsOn = true
		c.testPos = 0
		c.xfmr.Request(true)
	default:
		c.logger.Debug("Ignoring gesture", "count", count)
	}
}

func gestureLabel(count int) string {
	switch count {
	case gestureToggle:
		return "toggle"
	case gestureSimulateTrip:
		return "simulate-trip"
	case gestureCyclePatterns:
		return "cycle"
	case gestureTestPattern:
		return "test"
	default:
		return "other"
	}
}

func (c *Controller) toggle() {
	c.lightsOn = !c.lightsOn
	c.logger.Info("Toggle", "lights_on", c.lightsOn)

	if c.lightsOn {
		c.xfmr.Request(true)
		c.reselectPattern()
	}

	switch c.timeOfDay {
	case Day:
		if !c.lightsOn {
			c.xfmr.Request(false)
		}
	case LateNight:
		// A manual on during late night only lasts so long.
		if c.lightsOn {
			s := c.store.Get()
			c.sched.Schedule(lateNightTimer,
				time.Duration(s.LateNightTimeoutMin)*time.Minute,
				c.handleLateNightExpire)
		} else {
			c.sched.Cancel(lateNightTimer)
		}
	}
}

func (c *Controller) setMode(m ViewMode) {
	if c.mode == m {
		return
	}
	c.mode = m
	c.logger.Info("View mode changed", "mode", m.String())
	if c.bus != nil {
		c.bus.Publish(events.ModeChangedEvent{
			Mode:      m.String(),
			Timestamp: c.sched.Now().Format(time.RFC3339),
		})
	}
}

// --- clock and sensor handling ---

func (c *Controller) handleSunset() {
	c.logger.Info("Sunset")
	c.timeOfDay = Night
	c.lightsOn = true
	c.xfmr.Request(true)
	c.reselectPattern()

	// Log the dusk light decay for sensor calibration.
	c.duskStart = c.sched.Now()
	c.sched.Schedule(duskTimer, duskLogInterval, c.duskPeriodic)
}

func (c *Controller) duskPeriodic() {
	c.logger.Info("Dusk ambient sample", "lux", c.lastLux)
	if c.sched.Now().Sub(c.duskStart) < duskLogWindow {
		c.sched.Schedule(duskTimer, duskLogInterval, c.duskPeriodic)
	}
}

func (c *Controller) handleSunrise() {
	c.logger.Info("Sunrise")
	c.timeOfDay = Day
	c.lightsOn = false
	c.xfmr.Request(false)
}

func (c *Controller) handleLateNightAlarm() {
	c.logger.Info("Late night alarm")
	c.timeOfDay = LateNight
	// The transformer stays on so motion trips can still light up.
	c.lightsOn = false
}

func (c *Controller) handleLateNightExpire() {
	c.logger.Info("Late night timeout expired")
	c.lightsOn = false
}

// handleMotion applies a motion sensor edge. Motion during Day is
// ignored entirely; releases during Day clear the trip immediately so a
// sunrise mid-trip cannot leave it latched.
func (c *Controller) handleMotion(active bool) {
	if active {
		if c.timeOfDay == Day {
			return
		}
		c.logger.Info("Motion sensor tripped")
		c.motionTrip = true
		c.sched.Cancel(motionTimer)
		return
	}

	if c.timeOfDay == Day {
		c.motionTrip = false
		return
	}
	c.logger.Info("Motion sensor released, cooling down")
	s := c.store.Get()
	c.sched.Schedule(motionTimer,
		time.Duration(s.MotionTimeoutMin)*time.Minute,
		func() {
			c.logger.Info("Motion trip cooled down")
			c.motionTrip = false
		})
}

func (c *Controller) handleLux(lux float64) {
	c.lastLux = lux
	c.haveLux = true
	if c.met != nil {
		c.met.AmbientLux.Set(lux)
	}
	s := c.store.Get()
	c.luxTrigger = lux <= s.MinLux
}

// normalizedAmbient maps the last lux reading onto [0, 1] between the
// configured min and max.
func (c *Controller) normalizedAmbient() float64 {
	s := c.store.Get()
	span := s.MaxLux - s.MinLux
	if span <= 0 {
		return 0
	}
	v := (c.lastLux - s.MinLux) / span
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (c *Controller) armLateNightAlarm() {
	s := c.store.Get()
	c.sched.ScheduleDaily(lateNightAlarm, s.LateNightHour, s.LateNightMinute, func() {
		c.bus.Publish(events.LateNightAlarmEvent{
			Timestamp: c.sched.Now().Format(time.RFC3339),
		})
	})
}

// RearmLateNightAlarm reprograms the daily alarm after the start time
// setting changed.
func (c *Controller) RearmLateNightAlarm() {
	c.Do(c.armLateNightAlarm)
}

func (c *Controller) reselectPattern() {
	c.active = SelectPatternAround(c.patterns, c.sched.Now())
	if c.active != nil {
		c.logger.Info("Holiday pattern selected", "pattern", c.active.Name)
	}
}

// --- rendering ---

// lit evaluates the Normal-mode lighting gate.
func (c *Controller) lit() bool {
	return c.lightsOn ||
		(c.timeOfDay != Day && c.motionTrip) ||
		(c.timeOfDay == Day && c.luxTrigger)
}

// intensity selects the Normal-mode brightness scale.
func (c *Controller) intensity() float64 {
	s := c.store.Get()
	switch {
	case c.timeOfDay == Day:
		return 1.0
	case c.motionTrip:
		return s.ActiveIntensity
	case c.haveLux:
		return (1 - c.normalizedAmbient()) * s.DefaultIntensity
	default:
		return s.DefaultIntensity
	}
}

func (c *Controller) renderNormal() {
	on := c.lit()
	if c.met != nil {
		if on {
			c.met.LightsOn.Set(1)
		} else {
			c.met.LightsOn.Set(0)
		}
	}
	if !on {
		for i := range c.pix {
			c.pix[i] = color.NRGBA{A: 255}
		}
		return
	}

	if c.active != nil {
		copy(c.frame, c.active.Draw(len(c.frame)))
	} else {
		s := c.store.Get()
		fallback := RGB{R: s.DefaultColor.R, G: s.DefaultColor.G, B: s.DefaultColor.B}
		for i := range c.frame {
			c.frame[i] = fallback
		}
	}

	intensity := c.intensity()
	for i, px := range c.frame {
		c.pix[i] = Compose(px, intensity)
	}
}

func (c *Controller) renderCycle(now time.Time) {
	if c.active == nil || now.Sub(c.cycleAt) >= c.cfg.CyclePeriod {
		c.active = &c.patterns[c.cycleIdx%len(c.patterns)]
		c.cycleIdx++
		c.cycleAt = now
		c.logger.Debug("Cycling patterns", "pattern", c.active.Name)
	}
	copy(c.frame, c.active.Draw(len(c.frame)))
	for i, px := range c.frame {
		c.pix[i] = Compose(px, 1.0)
	}
}

// renderTest sweeps an R/G/B pixel chase back and forth across the roof.
func (c *Controller) renderTest(dt time.Duration) {
	n := len(c.pix)
	c.testPos += c.cfg.TestSweepPPS * dt.Seconds()
	if c.testPos >= float64(2*n) {
		c.testPos -= float64(2 * n)
	}

	pos := int(c.testPos)
	r := reflectIndex(pos, n)
	g := reflectIndex(pos-1, n)
	b := reflectIndex(pos-2, n)

	for i := range c.pix {
		px := color.NRGBA{A: 255}
		if i == r {
			px.R = 255
		}
		if i == g {
			px.G = 255
		}
		if i == b {
			px.B = 255
		}
		c.pix[i] = px
	}
}

// reflectIndex folds a position on the doubled ramp [0, 2n) back onto a
// pixel index, producing the bounce at each end. Out-of-range positions
// return -1 and light nothing.
func reflectIndex(pos, n int) int {
	if pos < 0 || pos >= 2*n {
		return -1
	}
	if pos < n {
		return pos
	}
	return 2*n - pos - 1
}

func (c *Controller) flush() {
	if err := c.out.Flush(c.pix); err != nil {
		c.logger.Warn("Frame flush failed", "error", err)
		return
	}
	if c.met != nil {
		c.met.FramesTotal.Inc()
	}
}

// blankAndFlush zeroes the strip synchronously. The transformer
// sequencer calls it before opening the relay so no stale colors linger.
func (c *Controller) blankAndFlush() {
	for i := range c.pix {
		c.pix[i] = color.NRGBA{A: 255}
	}
	if err := c.out.Flush(c.pix); err != nil {
		c.logger.Warn("Blank flush failed", "error", err)
	}
}

func (c *Controller) transformerChanged(st transformer.State) {
	if c.met != nil {
		c.met.TransformerTransitions.WithLabelValues(st.String()).Inc()
	}
	if c.bus != nil {
		c.bus.Publish(events.TransformerChangedEvent{
			State:     st.String(),
			Timestamp: c.sched.Now().Format(time.RFC3339),
		})
	}
}

// --- command surface support ---

// SetToggle forces the on/off flag, returns to Normal mode, and
// re-evaluates the holiday pattern. During Day the transformer follows
// the flag.
func (c *Controller) SetToggle(on bool) {
	c.Do(func() {
		c.lightsOn = on
		c.setMode(Normal)
		if on {
			c.xfmr.Request(true)
		}
		c.reselectPattern()
		if c.timeOfDay == Day {
			c.xfmr.Request(on)
		}
	})
}

// SetTestPattern enters or leaves test-pattern mode. Leaving during Day
// also powers the transformer down.
func (c *Controller) SetTestPattern(on bool) {
	c.Do(func() {
		if on {
			c.xfmr.Request(true)
			c.lightsOn = true
			c.testPos = 0
			c.setMode(TestPattern)
			return
		}
		if c.timeOfDay == Day {
			c.xfmr.Request(false)
		}
		c.lightsOn = false
		c.setMode(Normal)
	})
}

// Status is a diagnostic snapshot for the status page.
type Status struct {
	Mode          string  `json:"mode"`
	TimeOfDay     string  `json:"time_of_day"`
	ActivePattern string  `json:"active_pattern"`
	LightsOn      bool    `json:"lights_on"`
	MotionTrip    bool    `json:"motion_trip"`
	LuxTrigger    bool    `json:"lux_trigger"`
	AmbientLux    float64 `json:"ambient_lux"`
	Transformer   string  `json:"transformer"`
}

// Snapshot captures the controller state for diagnostics.
func (c *Controller) Snapshot() Status {
	var st Status
	c.Do(func() {
		st = Status{
			Mode:        c.mode.String(),
			TimeOfDay:   c.timeOfDay.String(),
			LightsOn:    c.lightsOn,
			MotionTrip:  c.motionTrip,
			LuxTrigger:  c.luxTrigger,
			AmbientLux:  c.lastLux,
			Transformer: c.xfmr.State().String(),
		}
		if c.active != nil {
			st.ActivePattern = c.active.Name
		}
	})
	return st
}
