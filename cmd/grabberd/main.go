// grabberd is the root daemon of this core: it owns the manipulator rule
// engine (C4), the event queue (C2), the post-event dispatch queue (C5),
// the manipulator timer (C7), the mouse-key handler (C6), and a client
// connection to helperd's per-console-user socket (C8) through which it
// requests shell_command execution and select_input_source. It posts HID
// reports through the virtual HID client (C9).
//
// Grabbing physical keyboard/pointing devices is an OS-level privilege
// the core treats as an external collaborator (§1 non-goals): this binary
// drives its manipulator engine from whatever deviceobserver.Source it is
// built with, defaulting to an injectable in-process stub when no real
// grabber is wired in.
package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/pqrs-org/karabiner-go-core/internal/clock"
	"github.com/pqrs-org/karabiner-go-core/internal/config"
	"github.com/pqrs-org/karabiner-go-core/internal/deviceobserver"
	"github.com/pqrs-org/karabiner-go-core/internal/eventvalue"
	"github.com/pqrs-org/karabiner-go-core/internal/ipc"
	"github.com/pqrs-org/karabiner-go-core/internal/klog"
	"github.com/pqrs-org/karabiner-go-core/internal/manipulator"
	"github.com/pqrs-org/karabiner-go-core/internal/mousekey"
	"github.com/pqrs-org/karabiner-go-core/internal/postevent"
	"github.com/pqrs-org/karabiner-go-core/internal/timer"
	"github.com/pqrs-org/karabiner-go-core/internal/virtualhid"
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "karabiner-go-core", "karabiner.json")
}

func defaultHelperSocketPath() string {
	return filepath.Join(os.TempDir(), "karabiner_helperd_"+strconv.Itoa(os.Getuid())+".sock")
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "profile-set document path")
	helperSocket := flag.String("helper-socket", defaultHelperSocketPath(), "helperd datagram socket path")
	flag.Parse()

	log := klog.New("grabberd")

	loader := config.NewLoader(*configPath)
	set := loader.Load()
	if !set.IsLoaded {
		log.Warn().Str("path", *configPath).Msg("no config found, using defaults")
	}
	if err := loader.Watch(); err != nil {
		log.Warn().Err(err).Msg("config hot-reload disabled")
	}
	defer loader.Close()

	profile := set.SelectedProfile()
	rules := manipulator.BuildRuleSet(&profile)

	inputQueue := eventvalue.NewQueue()
	outputQueue := postevent.NewQueue()
	sched := timer.New()
	mouse := mousekey.New()

	eng := manipulator.NewEngine(rules, inputQueue, outputQueue, sched, mouse, manipulator.Environment{})

	loader.OnChange(func(s *config.Set) {
		p := s.SelectedProfile()
		eng.SetRuleSet(manipulator.BuildRuleSet(&p))
		log.Info().Msg("config reloaded")
	})

	hid := virtualhid.NewStub()
	if err := hid.InitializeVirtualHIDKeyboard(virtualhid.KeyboardProperties{}); err != nil {
		log.Error().Err(err).Msg("failed to initialize virtual keyboard")
	}
	if err := hid.InitializeVirtualHIDPointing(); err != nil {
		log.Error().Err(err).Msg("failed to initialize virtual pointing device")
	}

	helper := ipc.NewClient(*helperSocket)
	helper.Connected = func() { log.Info().Msg("connected to helperd") }
	helper.ConnectFailed = func(err error) { log.Warn().Err(err).Msg("helperd connect failed") }
	helper.Disconnected = func() { log.Warn().Msg("disconnected from helperd") }
	if err := helper.Connect(); err != nil {
		log.Warn().Err(err).Msg("helperd not reachable yet, will keep retrying")
	}
	defer helper.Close()

	sender := &ipc.DatagramSender{HID: hid, Client: helper}

	observer := deviceobserver.NewStub()
	if err := observer.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start device observer")
	}
	defer observer.Stop()

	onPostEventError := func(err error) {
		log.Warn().Err(err).Msg("post-event dispatch failed")
	}

	stop := make(chan struct{})
	go runTickLoop(eng, mouse, outputQueue, sender, onPostEventError, stop)
	go runInputLoop(eng, observer)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	close(stop)
	log.Info().Msg("shutting down")
}

// runInputLoop feeds every event the device observer delivers into the
// manipulator engine, timestamping it against the system clock the same
// way the engine's Tick loop does.
func runInputLoop(eng *manipulator.Engine, observer deviceobserver.Source) {
	clk := clock.SystemSource{}
	for qe := range observer.Events() {
		eng.HandleInputEvent(qe, clk.Now())
	}
}

// runTickLoop is the 20ms cadence of §4.6 (mouse-key ticks), reused to
// also advance the manipulator timer (C7) and drain the post-event queue
// (C5) so that to_if_held_down / to_delayed_action callbacks and any
// still-floored entries keep flushing even absent new input.
func runTickLoop(eng *manipulator.Engine, mouse *mousekey.Handler, out *postevent.Queue, sender postevent.Sender, onError func(error), stop <-chan struct{}) {
	ticker := time.NewTicker(mousekey.TickInterval * time.Millisecond)
	defer ticker.Stop()

	clk := clock.SystemSource{}
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := clk.Now()

			if output, active := mouse.Tick(); active {
				out.EmplaceBackPointingInput(toPointingReport(output), now)
			}

			eng.Tick(now)
			out.AsyncPostEvents(now, sender, onError)
		}
	}
}

// toPointingReport converts one mouse-key tick's deltas into a HID report.
// Button state isn't tracked here: mouse-key entries only ever carry
// movement/wheel deltas (§4.6), never a button press, so the bitmask is
// always empty for this path.
func toPointingReport(o mousekey.PointingOutput) virtualhid.PointingInputReport {
	return virtualhid.PointingInputReport{
		X:               int8(clampByte(o.X)),
		Y:               int8(clampByte(o.Y)),
		VerticalWheel:   int8(clampByte(o.VerticalWheel)),
		HorizontalWheel: int8(clampByte(o.HorizontalWheel)),
	}
}

func clampByte(v int) int {
	if v > 127 {
		return 127
	}
	if v < -127 {
		return -127
	}
	return v
}
