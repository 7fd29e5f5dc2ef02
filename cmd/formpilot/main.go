// Package main provides the formpilot command: fill form fields on a
// live page or a local HTML snapshot using configured mapping profiles.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/formpilot/formpilot/pkg/autofill"
	"github.com/formpilot/formpilot/pkg/browser"
	"github.com/formpilot/formpilot/pkg/config"
	"github.com/formpilot/formpilot/pkg/dom"
	"github.com/formpilot/formpilot/pkg/logging"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigFile  string
	URL         string
	File        string
	OutFile     string
	Profile     string
	Headless    bool
	Dump        bool
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("formpilot v%s\n", version)
		return
	}

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "formpilot: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags.
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML, default ~/.formpilot/config.yaml)")
	flag.StringVar(&cli.URL, "url", "", "URL to open in a browser session and fill")
	flag.StringVar(&cli.File, "file", "", "Local HTML file to fill offline")
	flag.StringVar(&cli.OutFile, "out", "", "Where to write the filled HTML in offline mode (default: stdout)")
	flag.StringVar(&cli.Profile, "profile", "", "Mapping profile name (default: first profile matching the page URL)")
	flag.BoolVar(&cli.Headless, "headless", true, "Run the browser without a visible window")
	flag.BoolVar(&cli.Dump, "dump", false, "List detected fields without filling")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "FormPilot - rule-based form autofill\n\n")
		fmt.Fprintf(os.Stderr, "Usage: formpilot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Fill a local HTML snapshot and print the result\n")
		fmt.Fprintf(os.Stderr, "  formpilot -file signup.html -profile defaults\n\n")
		fmt.Fprintf(os.Stderr, "  # Open a page in a headless browser and fill it\n")
		fmt.Fprintf(os.Stderr, "  formpilot -url https://example.com/signup\n\n")
		fmt.Fprintf(os.Stderr, "  # Inspect what would be detected, without filling\n")
		fmt.Fprintf(os.Stderr, "  formpilot -file signup.html -dump\n\n")
	}

	flag.Parse()
	return cli
}

func run(cli *CLIConfig) error {
	if cli.URL == "" && cli.File == "" {
		return fmt.Errorf("one of -url or -file is required")
	}
	if cli.URL != "" && cli.File != "" {
		return fmt.Errorf("-url and -file are mutually exclusive")
	}

	store, err := config.NewStore(cli.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := store.Config()

	log, logErr := logging.NewLogger("cli")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", logErr)
	}
	defer log.Close()

	if cli.File != "" {
		return runOffline(cli, cfg, log)
	}
	return runLive(cli, cfg, log)
}

// runOffline fills a local HTML snapshot and writes the mutated
// document back out.
func runOffline(cli *CLIConfig, cfg *config.Config, log *logging.Logger) error {
	data, err := os.ReadFile(cli.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cli.File, err)
	}

	doc, err := dom.ParseString(string(data))
	if err != nil {
		return err
	}

	scanner := autofill.NewScanner(log)
	fields := scanner.Detect(doc.Root())

	if cli.Dump {
		for _, f := range fields {
			fmt.Printf("%-14s %-30s label=%q\n", f.Type, f.Identity(), f.Label)
		}
		fmt.Printf("%d fields detected\n", len(fields))
		return nil
	}

	profile, err := pickProfile(cli, cfg, cli.File)
	if err != nil {
		return err
	}

	filler := autofill.NewFiller(profile.Mappings, log)
	report := filler.FillAll(fields)
	printReport(report)

	out := os.Stdout
	if cli.OutFile != "" {
		f, createErr := os.Create(cli.OutFile)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", cli.OutFile, createErr)
		}
		defer f.Close()
		out = f
	}
	return doc.Render(out)
}

// runLive opens a browser session, navigates, and fills the live page.
func runLive(cli *CLIConfig, cfg *config.Config, log *logging.Logger) error {
	manager := browser.NewSessionManager(log)
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	// Close the browser on interrupt.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		manager.Shutdown()
		os.Exit(1)
	}()

	if cli.Profile != "" {
		if cfg.ProfileByName(cli.Profile) == nil {
			return fmt.Errorf("profile %q not found", cli.Profile)
		}
		// Narrow the config to the requested profile.
		narrowed := *cfg
		narrowed.Profiles = []config.Profile{*cfg.ProfileByName(cli.Profile)}
		cfg = &narrowed
	}

	session, err := manager.StartSession("cli", browser.SessionOptions{
		Config:   cfg,
		Headless: cli.Headless,
	})
	if err != nil {
		return err
	}

	if err := session.Navigate(cli.URL, browser.NavigateOptions{WaitUntil: "domcontentloaded"}); err != nil {
		return err
	}

	if cli.Dump {
		doc, snapErr := session.Snapshot()
		if snapErr != nil {
			return snapErr
		}
		scanner := autofill.NewScanner(log)
		for _, f := range scanner.Detect(doc.Root()) {
			fmt.Printf("%-14s %-30s label=%q\n", f.Type, f.Identity(), f.Label)
		}
		return nil
	}

	applied, err := session.AutoFill()
	if err != nil {
		return err
	}
	fmt.Printf("%d fields filled on %s\n", applied, cli.URL)
	return nil
}

// pickProfile resolves the profile to use in offline mode: the named
// one, or the first matching the file path treated as the page URL.
func pickProfile(cli *CLIConfig, cfg *config.Config, url string) (*config.Profile, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("autofill is disabled in configuration")
	}
	if cli.Profile != "" {
		profile := cfg.ProfileByName(cli.Profile)
		if profile == nil {
			return nil, fmt.Errorf("profile %q not found", cli.Profile)
		}
		return profile, nil
	}
	profile := cfg.ProfileFor(url)
	if profile == nil {
		return nil, fmt.Errorf("no profile matches %s (use -profile to pick one)", url)
	}
	return profile, nil
}

// printReport writes a per-field summary to stderr, keeping stdout free
// for the rendered document.
func printReport(report *autofill.Report) {
	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "  %-30s error: %v\n", res.Field.Identity(), res.Err)
		case res.Filled:
			fmt.Fprintf(os.Stderr, "  %-30s filled (%s)\n", res.Field.Identity(), res.Tier)
		case res.Mapping == nil:
			fmt.Fprintf(os.Stderr, "  %-30s no mapping\n", res.Field.Identity())
		default:
			fmt.Fprintf(os.Stderr, "  %-30s skipped\n", res.Field.Identity())
		}
	}
	fmt.Fprintf(os.Stderr, "%d of %d fields filled\n", report.Filled(), len(report.Results))
}
