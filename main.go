package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/larsks/hostedit/hostfile"
	"github.com/larsks/hostedit/notify"
	"github.com/larsks/hostedit/plugin"
	"github.com/m-lab/go/rtx"
	"github.com/spf13/pflag"
)

func main() {
	// Parse command line arguments
	hostname := pflag.String("hostname", "", "hostname to manage")
	ip := pflag.String("ip", "", "IP address for the hostname")
	state := pflag.String("state", "present", "desired state (present or absent)")
	file := pflag.StringP("file", "f", hostfile.DefaultPath(), "hosts file to edit")
	check := pflag.Bool("check", false, "report what would change without writing")
	backup := pflag.Bool("backup", false, "save a copy of the file before changing it")
	notifyCommand := pflag.String("notify-command", "", "command to run after the file changes")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	// The JSON response goes to stdout; everything else goes to stderr.
	log.SetHandler(cli.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var params plugin.Params
	switch pflag.NArg() {
	case 0:
		// Direct mode: everything comes from flags.
		params = plugin.Params{
			Hostname:      *hostname,
			IP:            *ip,
			State:         *state,
			Path:          *file,
			Backup:        *backup,
			NotifyCommand: *notifyCommand,
			CheckMode:     *check,
		}
	case 1:
		// Module mode: the orchestration host passes a JSON args file
		// as the single argument.
		var err error
		params, err = plugin.LoadParams(pflag.Arg(0))
		if err != nil {
			fail(err.Error())
		}
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [args-file]\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}

	// Create context with signal handling; a signal cancels a running
	// notify command.
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := plugin.Runner{Executor: &notify.ExecCommandExecutor{}}
	result, err := runner.Run(ctx, params)
	if err != nil {
		fail(plugin.FailureMessage(err))
	}

	rtx.Must(plugin.WriteResult(os.Stdout, result), "failed to encode result")
}

// fail reports a failure to the host and exits nonzero.
func fail(msg string) {
	rtx.Must(plugin.WriteFailure(os.Stdout, msg), "failed to encode failure")
	os.Exit(1)
}
