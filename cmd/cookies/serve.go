package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookie-crush/internal/config"
	"github.com/vovakirdan/cookie-crush/internal/games/cookies"
	"github.com/vovakirdan/cookie-crush/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Cookie Crush SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a board picker menu and
scoreboard. Scores are stored per server and recorded under the SSH user name.

Settings come from the environment and can be overridden by flags:
  COOKIES_SSH_ADDR       --ssh            listen address (default :23234)
  COOKIES_HOST_KEY       --host-key       host key file (default ~/.cookies/host_key)
  COOKIES_DB             --db             scores database
  COOKIES_IDLE_TIMEOUT   --idle-timeout   idle disconnect (default 30m)
  COOKIES_TICK_RATE      --fps            simulation rate (default 30)

Examples:
  cookies serve                           # Listen on :23234 with auto-generated key
  cookies serve --ssh :2222               # Listen on port 2222
  cookies serve --host-key ./my_host_key  # Use specific host key
  COOKIES_DB=/var/lib/cookies.db cookies serve

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle timeout before disconnecting")
}

// serverConfig reads the environment and applies the flags that were set.
func serverConfig(cmd *cobra.Command) (config.ServerConfig, error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := serverConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvLogger := logger
	if flagLogFile == "" {
		srvLogger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cookies-ssh",
		})
		cookies.SetLogger(srvLogger)
	}

	server, err := tui.NewSSHServer(cfg, srvLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Cookie Crush SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		closeLogging()
		os.Exit(1)
	}
}
