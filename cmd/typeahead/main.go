// Copyright 2025 The Typeahead Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the typeahead REPL and IPC server.

Typeahead keeps a vocabulary of lowercase words with scores in a prefix trie
and answers ranked completion queries. Every node caches the best completions
below it, so common queries are served without walking the subtree.

# Usage

Start the line protocol REPL on stdin/stdout:

	typeahead

Preload a snapshot and enable debug logging:

	typeahead -load data/words.csv -d

Serve MessagePack requests instead of protocol lines:

	typeahead -server -load data/words.csv

# Line Protocol

One command per line; answers go to stdout, diagnostics to stderr:

	load <path>
	save <path>
	insert <word> <freq>
	remove <word>          -> OK | MISS
	contains <word>        -> YES | NO
	complete <prefix> <k>  -> comma separated words, best first
	stats                  -> words=N height=H nodes=M
	quit

Unknown commands and malformed arguments are ignored. Failed loads and saves
print an ERROR line to stderr and keep the current vocabulary.

# Snapshots

Snapshots are CSV files with one word,score row per word. An optional
word,score header on the first line is skipped.

	hello,120
	help,87.5

# Configuration

Runtime options live in a TOML file, created with defaults on first start:

	[trie]
	cache_cap = 64

	[dict]
	skip_foreign = false
	max_words = 0

	[server]
	protocol = "msgpack"
	default_limit = 10
	max_limit = 1000

	[log]
	level = "warn"

# Command Line Flags

	-config string
	    Path to a custom config file
	-d  Enable debug mode with detailed logging
	-load string
	    Snapshot to load before reading commands
	-server
	    Run the IPC server instead of the REPL
	-proto string
	    IPC framing, msgpack or json (default from config)
	-cap int
	    Per node ranking cache size (default from config)
	-skip-foreign
	    Skip snapshot rows holding characters outside a-z instead of failing
	-reset-config
	    Rewrite the config file with defaults and exit
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/typeahead/internal/cli"
	"github.com/bastiangx/typeahead/internal/logger"
	"github.com/bastiangx/typeahead/internal/utils"
	"github.com/bastiangx/typeahead/pkg/config"
	"github.com/bastiangx/typeahead/pkg/server"
	"github.com/bastiangx/typeahead/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "typeahead"
	gh      = "https://github.com/bastiangx/typeahead"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires flags and config into the session, REPL and server.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	loadPath := flag.String("load", "", "Snapshot to load before reading commands")
	serverMode := flag.Bool("server", false, "Run the IPC server instead of the line REPL")
	protocol := flag.String("proto", "", "IPC framing: msgpack or json (default from config)")
	cacheCap := flag.Int("cap", 0, "Per node ranking cache size (default from config)")
	skipForeign := flag.Bool("skip-foreign", false, "Skip snapshot rows with characters outside a-z instead of failing the load")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	log.SetLevel(log.WarnLevel)

	if *resetConfig {
		path, err := config.RebuildConfigFile(*configFile)
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Config rebuilt at %s", path)
		os.Exit(0)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.SetLevel(logger.ParseLevel(appConfig.Log.Level, log.WarnLevel))
	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))

	if *cacheCap > 0 {
		appConfig.Trie.CacheCap = *cacheCap
	}
	if *skipForeign {
		appConfig.Dict.SkipForeign = true
	}
	if *protocol != "" {
		appConfig.Server.Protocol = *protocol
	}

	sess := session.New(session.Options{
		CacheCap:    appConfig.Trie.CacheCap,
		SkipForeign: appConfig.Dict.SkipForeign,
		MaxWords:    appConfig.Dict.MaxWords,
	}, newLogger("session", *debugMode))

	if *loadPath != "" {
		report, err := sess.Load(*loadPath)
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
		log.Debug("Snapshot loaded",
			"path", utils.GetAbsolutePath(*loadPath),
			"words", utils.FormatWithCommas(report.Words),
			"skipped", report.Skipped,
			"duplicates", report.Duplicates)
	}

	if *serverMode {
		srv, err := server.NewServer(sess, appConfig.Server, os.Stdin, os.Stdout, newLogger("server", *debugMode))
		if err != nil {
			log.Fatalf("Failed to create server: %v", err)
		}
		showStartupInfo(configPath, sess)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	log.SetReportTimestamp(false)
	handler := cli.NewInputHandler(sess, os.Stdin, os.Stdout, newLogger("cli", *debugMode), appConfig.CLI.EchoErrors)
	if err := handler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

// newLogger returns a prefixed stderr logger; debug builds report callers.
func newLogger(prefix string, debug bool) *log.Logger {
	if debug {
		return logger.NewWithConfig(prefix, log.DebugLevel, true, true, log.TextFormatter)
	}
	return logger.New(prefix)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ Typeahead ] ranked prefix completions")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic process info to stderr when debugging.
func showStartupInfo(configPath string, sess *session.Session) {
	if log.GetLevel() > log.DebugLevel {
		return
	}
	log.Debugf("%s %s", AppName, Version)
	log.Debugf("Process ID: [ %d ]", os.Getpid())
	log.Debugf("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Debugf("vocabulary: %s", sess.Stats())
	log.Debug("status: ready")
}
