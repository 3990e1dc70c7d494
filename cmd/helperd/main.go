// helperd is the per-console-user half of C8 (§4.8): it binds a datagram
// socket scoped to the logged-in user's uid and executes the privileged
// operations grabberd cannot perform itself — shell_command execution and
// select_input_source (§4.5's "sender" side of the post-event queue).
//
// Real input-source enumeration/selection is an OS integration the core
// treats as an external capability (§1 non-goals); this binary logs the
// request instead of carrying it out.
package main

import (
	"flag"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/pqrs-org/karabiner-go-core/internal/ipc"
	"github.com/pqrs-org/karabiner-go-core/internal/klog"
)

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), "karabiner_helperd_"+strconv.Itoa(os.Getuid())+".sock")
}

func main() {
	path := flag.String("socket", defaultSocketPath(), "datagram socket path to bind")
	flag.Parse()

	log := klog.New("helperd")

	srv := ipc.NewServer(*path)
	srv.Bound = func() { log.Info().Str("path", *path).Msg("bound") }
	srv.BindFailed = func(err error) { log.Error().Err(err).Msg("bind failed") }
	srv.Closed = func() { log.Info().Msg("closed") }
	srv.Received = func(payload []byte, addr net.Addr) {
		shellCommand, selectInputSource, err := ipc.DecodeUserData(payload)
		if err != nil {
			log.Warn().Err(err).Msg("malformed user_data frame")
			return
		}
		if shellCommand != "" {
			runShellCommand(log, shellCommand)
			return
		}
		if len(selectInputSource) > 0 {
			log.Info().Int("specifiers", len(selectInputSource)).
				Msg("select_input_source requested (not implemented: input-source switching is an external OS capability)")
		}
	}

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer srv.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutting down")
}

// runShellCommand executes cmd the way §4.5's shell_command to-event
// requires: fire-and-forget, output discarded, error logged and dropped.
func runShellCommand(log zerolog.Logger, cmd string) {
	c := exec.Command("/bin/sh", "-c", cmd)
	if err := c.Start(); err != nil {
		log.Warn().Err(err).Str("cmd", cmd).Msg("shell_command failed to start")
		return
	}
	go func() {
		if err := c.Wait(); err != nil {
			log.Warn().Err(err).Str("cmd", cmd).Msg("shell_command exited with error")
		}
	}()
}
