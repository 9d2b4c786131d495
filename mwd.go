// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/mwledger/mwd/internal/version"
)

// usageCommands lists the commands understood by mwd.
const usageCommands = `Commands:
  check <body>...                Validate the headers and elements of bodies
  combine <out> <first> <second> Combine two adjacent bodies into one`

// usageError prints the message along with the supported commands and
// returns it as an error that suppresses the usage message.
func usageError(msg string) error {
	fmt.Fprintf(os.Stderr, "%s\n\n%s\n", msg, usageCommands)
	return errSuppressUsage(msg)
}

// mwdMain is the real main function for mwd.  It is necessary to work around
// the fact that deferred functions do not run when os.Exit() is called.
func mwdMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	cfg, args, err := loadConfig(appName, os.Args[1:])
	if err != nil {
		var e errSuppressUsage
		if !errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Get a context that will be canceled when a shutdown signal has been
	// triggered from an OS signal such as SIGINT (Ctrl+C).
	ctx := shutdownListener()
	defer mwdLog.Info("Shutdown complete")

	// Show version and network at startup.
	mwdLog.Infof("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	mwdLog.Infof("Network: %s", cfg.rules.Name)
	if cfg.NoFileLogging {
		mwdLog.Info("File logging disabled")
	}

	// Write cpu profile if requested.
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			mwdLog.Errorf("Unable to create cpu profile: %v", err)
			return err
		}
		pprof.StartCPUProfile(f)
		defer f.Close()
		defer pprof.StopCPUProfile()
	}

	if len(args) == 0 {
		return usageError("no command specified")
	}

	switch cmd, params := args[0], args[1:]; cmd {
	case "check":
		if len(params) == 0 {
			return usageError("check requires at least one body")
		}
		for _, path := range params {
			if shutdownRequested(ctx) {
				return nil
			}
			if err := checkBody(ctx, cfg, path); err != nil {
				mwdLog.Errorf("Body %s rejected: %v", path, err)
				return err
			}
		}

	case "combine":
		if len(params) != 3 {
			return usageError("combine requires three bodies")
		}
		if err := combineBodies(ctx, cfg, params[0], params[1], params[2]); err != nil {
			mwdLog.Errorf("Unable to combine bodies: %v", err)
			return err
		}

	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := mwdMain(); err != nil {
		os.Exit(1)
	}
}
