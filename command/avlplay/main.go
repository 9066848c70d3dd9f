// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/kr/pretty"

	"github.com/bitmark-inc/avltree/fault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "watch", HasArg: getoptions.NO_ARGUMENT, Short: 'w'},
		{Long: "table", HasArg: getoptions.NO_ARGUMENT, Short: 't'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || len(arguments) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] [--table] [--config-file=FILE [--watch]]", program)
	}

	verbose := len(options["verbose"]) > 0
	quiet := len(options["quiet"]) > 0
	watch := len(options["watch"]) > 0

	var masterConfiguration *Configuration
	configurationFile := ""

	switch len(options["config-file"]) {
	case 0:
		if watch {
			exitwithstatus.Message("%s: --watch requires a config-file", program)
		}

		// built-in script, logs go to a scratch directory
		logDirectory, err := os.MkdirTemp("", "avlplay-")
		if nil != err {
			exitwithstatus.Message("%s: cannot create log directory: %s", program, err)
		}
		defer os.RemoveAll(logDirectory)

		masterConfiguration = demoConfiguration()
		masterConfiguration.Logging = logger.Configuration{
			Directory: logDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		}

	case 1:
		configurationFile = options["config-file"][0]
		masterConfiguration, err = getConfiguration(configurationFile)
		if nil != err {
			exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
		}

	default:
		exitwithstatus.Message("%s: only one config-file option is allowed, %d were detected", program, len(options["config-file"]))
	}

	if len(options["table"]) > 0 {
		masterConfiguration.Table = true
	}
	if verbose {
		masterConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %s", pretty.Sprint(masterConfiguration))

	scriptLog := logger.New(ScriptLoggerPrefix)

	var output io.Writer = os.Stdout
	if quiet {
		output = io.Discard
	}

	if _, err := runScript(masterConfiguration, scriptLog, output); nil != err {
		log.Criticalf("script error: %s", err)
		if !watch {
			exitwithstatus.Message("%s: script failed: %s", program, err)
		}
	}

	if !watch {
		return
	}

	watcher, err := newFileWatcher(configurationFile, logger.New(FileWatcherLoggerPrefix))
	if nil != err {
		exitwithstatus.Message("%s: file watcher setup failed with error: %s", program, err)
	}
	if err := watcher.Start(); nil != err {
		exitwithstatus.Message("%s: file watcher start failed with error: %s", program, err)
	}
	defer watcher.Stop()

	if !quiet {
		fmt.Printf("\n\nWaiting for changes to: %s or CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…\n", configurationFile)
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	rerun := func() error {
		latest, err := getConfiguration(configurationFile)
		if nil != err {
			return err
		}
		latest.Table = masterConfiguration.Table
		log.Debugf("configuration: %s", pretty.Sprint(latest))
		_, err = runScript(latest, scriptLog, output)
		return err
	}

	sig := watchLoop(watcher, ch, rerun, log)
	log.Infof("received signal: %v", sig)
	if !quiet {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down...\n")
	}
}

// re-run on every change event until a signal arrives, errors are
// logged and waiting continues
func watchLoop(watcher FileWatcher, signals <-chan os.Signal, rerun func() error, log *logger.L) os.Signal {
	for {
		select {
		case <-watcher.ChangeChannel():
			log.Info("configuration changed, re-running script")
			if err := rerun(); nil != err {
				log.Errorf("re-run error: %s", err)
			}
		case <-watcher.RemoveChannel():
			log.Warn("configuration file removed, waiting for it to return")
		case sig := <-signals:
			return sig
		}
	}
}
