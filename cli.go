package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/shazow/wifimenu/internal/chooser"
	"github.com/shazow/wifimenu/internal/config"
	"github.com/shazow/wifimenu/internal/iface"
	wifilog "github.com/shazow/wifimenu/internal/log"
	"github.com/shazow/wifimenu/internal/metrics"
	"github.com/shazow/wifimenu/internal/qrwifi"
	"github.com/shazow/wifimenu/internal/runner"
	"github.com/shazow/wifimenu/internal/selector"
	"github.com/shazow/wifimenu/internal/tui"
	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/iwd"
	"github.com/shazow/wifimenu/wifi/mock"
	"github.com/shazow/wifimenu/wifi/netctl"
	"github.com/shazow/wifimenu/wifi/networkmanager"
	"github.com/shazow/wifimenu/wifi/scan"
)

// options are the root flags. Subcommands share them.
type options struct {
	Interface     string
	Manager       string
	ScanMethod    string
	ScanTool      string
	ScanFile      string
	Policy        string
	Chooser       string
	Prompt        string
	ProfileDir    string
	MaxIterations int
	Key           string
	MetricsFile   string
	Theme         string
	Config        string

	DryRun      bool
	IgnoreKnown bool
	Save        bool
	Demo        bool
	NMDBus      bool
	Verbose     bool
	Version     bool
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.Interface, "interface", "", "wireless interface, detected when empty (env: WIFIMENU_INTERFACE)")
	fs.StringVar(&o.Manager, "manager", "netctl", "connection manager that knows networks: netctl, networkmanager or iwd")
	fs.StringVar(&o.ScanMethod, "scan-method", "iw-dump", "scan method: iw-dump, iw-scan, wpa_cli, nmcli, file or stdin")
	fs.StringVar(&o.ScanTool, "scan-tool", "iw", "tool that produced the output for the file and stdin methods: iw, wpa_cli or nmcli")
	fs.StringVar(&o.ScanFile, "scan-file", "", "saved scan output for the file method")
	fs.StringVar(&o.Policy, "policy", "ask", "selection policy: ask, known-or-ask, known-or-fail or first")
	fs.StringVar(&o.Chooser, "chooser", "tui", "chooser: tui, dmenu, rofi, fzf or a command reading options on stdin")
	fs.StringVar(&o.Prompt, "prompt", selector.DefaultPrompt, "chooser prompt")
	fs.StringVar(&o.ProfileDir, "profile-dir", netctl.DefaultDir, "netctl profile directory")
	fs.IntVar(&o.MaxIterations, "max-iterations", selector.DefaultMaxIterations, "give up after this many selection passes")
	fs.StringVar(&o.Key, "key", "", "key to save for the selected network instead of asking")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this path")
	fs.StringVar(&o.Theme, "theme", "", "path to theme toml file (env: WIFIMENU_THEME)")
	fs.StringVar(&o.Config, "config", config.DefaultPath(), "path to config toml file")

	fs.BoolVar(&o.DryRun, "dry-run", false, "log commands and profile writes instead of running them")
	fs.BoolVar(&o.IgnoreKnown, "ignore-known", false, "treat every network as unknown")
	fs.BoolVar(&o.Save, "save", false, "write a profile for the selected network if it is not known")
	fs.BoolVar(&o.Demo, "demo", false, "use a fake radio instead of scanning")
	fs.BoolVar(&o.NMDBus, "nm-dbus", false, "talk to NetworkManager over D-Bus instead of nmcli")
	fs.BoolVar(&o.Verbose, "verbose", false, "log debug messages")
	fs.BoolVar(&o.Version, "version", false, "display version")
}

// networkManager is implemented by both NetworkManager clients.
type networkManager interface {
	selector.Resolver
	selector.ConnectionWriter
}

// prompter is implemented by every chooser.
type prompter interface {
	selector.Chooser
	selector.SecretPrompter
}

// app builds the selection components from the parsed options.
type app struct {
	opts   options
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// tty is the built-in picker's keyboard, the controlling terminal when nil.
	tty io.Reader

	logger  *slog.Logger
	logs    *wifilog.Handler
	metrics *metrics.Metrics

	iface string
	nm    networkManager
}

func (a *app) setup() error {
	level := slog.LevelInfo
	if a.opts.Verbose {
		level = slog.LevelDebug
	}
	a.logs = wifilog.Init(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger = slog.Default()

	if a.opts.Theme != "" {
		if err := tui.LoadThemeFile(a.opts.Theme); err != nil {
			return fmt.Errorf("error loading theme: %w", err)
		}
	}
	if a.opts.MetricsFile != "" {
		a.metrics = metrics.New()
	}
	return nil
}

func (a *app) finish() {
	if err := a.metrics.WriteFile(a.opts.MetricsFile); err != nil {
		a.logger.Error("failed to write metrics", "path", a.opts.MetricsFile, "err", err)
	}
}

// dryRun reports whether the system must be left alone. The demo radio has
// nothing to save profiles for.
func (a *app) dryRun() bool {
	return a.opts.DryRun || a.opts.Demo
}

func (a *app) runner() runner.Runner {
	if a.dryRun() {
		return runner.DryRun{Logger: a.logger}
	}
	return runner.Exec{Logger: a.logger}
}

// wirelessInterface returns --interface or a detected wireless interface.
// When required is false a failed detection yields an empty name.
func (a *app) wirelessInterface(ctx context.Context, required bool) (string, error) {
	if a.opts.Interface != "" {
		return a.opts.Interface, nil
	}
	if a.iface != "" {
		return a.iface, nil
	}
	name, err := iface.Detect(ctx, true)
	if err != nil {
		if required {
			return "", fmt.Errorf("no --interface given: %w", err)
		}
		a.logger.Debug("no wireless interface detected", "err", err)
		return "", nil
	}
	a.logger.Debug("detected wireless interface", "interface", name)
	a.iface = name
	return name, nil
}

func (a *app) manager() (wifi.Manager, error) {
	return wifi.ParseManager(a.opts.Manager)
}

func (a *app) networkManager() (networkManager, error) {
	if a.nm != nil {
		return a.nm, nil
	}
	if a.opts.NMDBus {
		nm, err := networkmanager.NewDBus(a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NetworkManager: %w", err)
		}
		nm.DryRun = a.dryRun()
		a.nm = nm
	} else {
		a.nm = &networkmanager.Nmcli{Runner: a.runner()}
	}
	return a.nm, nil
}

func (a *app) resolver() (selector.Resolver, error) {
	m, err := a.manager()
	if err != nil {
		return nil, err
	}
	r := &selector.KnownResolver{
		Manager:    m,
		Skip:       a.opts.DryRun || a.opts.IgnoreKnown,
		ProfileDir: a.opts.ProfileDir,
	}
	if r.Skip {
		return r, nil
	}
	switch m {
	case wifi.ManagerNetworkManager:
		nm, err := a.networkManager()
		if err != nil {
			return nil, err
		}
		r.NetworkManager = nm
	case wifi.ManagerIwd:
		known, err := iwd.New()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to iwd: %w", err)
		}
		r.Iwd = known
	}
	return r, nil
}

func (a *app) chooser() (prompter, error) {
	if a.opts.Chooser == "tui" {
		return &tui.Picker{Logs: a.logs, Input: a.tty, Output: a.stderr}, nil
	}
	// The chooser has to run even in a dry run.
	c, err := chooser.New(runner.Exec{Logger: a.logger}, a.opts.Chooser)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (a *app) engine(ctx context.Context, ch selector.Chooser) (*selector.Engine, error) {
	policy, err := selector.ParsePolicy(a.opts.Policy)
	if err != nil {
		return nil, err
	}
	e := &selector.Engine{
		Chooser:       ch,
		Policy:        policy,
		MaxIterations: a.opts.MaxIterations,
		Prompt:        a.opts.Prompt,
		Logger:        a.logger,
		Metrics:       a.metrics,
	}

	if a.opts.Demo {
		b := mock.New()
		e.Scanner = b
		e.Resolver = b
		if a.opts.IgnoreKnown {
			e.Resolver = &selector.KnownResolver{Skip: true}
		}
		return e, nil
	}

	method, err := scan.ParseMethod(a.opts.ScanMethod)
	if err != nil {
		return nil, err
	}
	tool, err := scan.ParseTool(a.opts.ScanTool)
	if err != nil {
		return nil, err
	}
	live := method == scan.MethodIwDump || method == scan.MethodIwScan || method == scan.MethodWpaCli
	name, err := a.wirelessInterface(ctx, live)
	if err != nil {
		return nil, err
	}
	e.Scanner = &scan.Scanner{
		Runner:    a.runner(),
		Method:    method,
		Interface: name,
		Tool:      tool,
		Path:      a.opts.ScanFile,
		Stdin:     a.stdin,
	}
	e.Resolver, err = a.resolver()
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (a *app) writer(ctx context.Context, secrets selector.SecretPrompter) (*selector.ProfileWriter, error) {
	m, err := a.manager()
	if err != nil {
		return nil, err
	}
	// netctl profiles are bound to an interface, NetworkManager can do without
	// one and iwd has no use for it.
	name, err := a.wirelessInterface(ctx, m == wifi.ManagerNetctl)
	if err != nil {
		return nil, err
	}
	w := &selector.ProfileWriter{Manager: m, Interface: name, Secrets: secrets}
	if a.opts.Key != "" {
		w.Key = &a.opts.Key
	}
	switch m {
	case wifi.ManagerNetctl:
		w.Netctl = &netctl.Store{Dir: a.opts.ProfileDir, DryRun: a.dryRun(), Logger: a.logger}
	case wifi.ManagerNetworkManager:
		nm, err := a.networkManager()
		if err != nil {
			return nil, err
		}
		w.NetworkManager = nm
	case wifi.ManagerIwd:
		w.Iwd = &iwd.Store{Dir: iwd.DefaultDir, DryRun: a.dryRun(), Logger: a.logger}
	}
	return w, nil
}

// runSelect picks a network and prints its essid, followed by a tab and the
// profile it is stored under when there is one.
func (a *app) runSelect(ctx context.Context) error {
	ch, err := a.chooser()
	if err != nil {
		return err
	}
	e, err := a.engine(ctx, ch)
	if err != nil {
		return err
	}
	n, err := e.Select(ctx)
	if err != nil {
		return err
	}

	id := string(n.Service)
	if a.opts.Save {
		w, err := a.writer(ctx, ch)
		if err != nil {
			return err
		}
		saved, written, err := w.Save(ctx, n)
		if err != nil {
			return fmt.Errorf("failed to save profile for %s: %w", n.ESSID, err)
		}
		if written {
			a.logger.Info("saved profile", "essid", n.ESSID, "profile", saved)
		}
		id = saved
	}

	if id == "" {
		fmt.Fprintln(a.stdout, n.ESSID)
	} else {
		fmt.Fprintf(a.stdout, "%s\t%s\n", n.ESSID, id)
	}
	return nil
}

type networkJSON struct {
	ESSID     string `json:"essid"`
	BSSID     string `json:"bssid,omitempty"`
	Signal    *int   `json:"signal,omitempty"`
	Encrypted bool   `json:"encrypted"`
	Known     bool   `json:"known"`
	Profile   string `json:"profile,omitempty"`
}

func (a *app) runList(ctx context.Context, asJSON, sync bool) error {
	e, err := a.engine(ctx, nil)
	if err != nil {
		return err
	}
	networks, err := e.Networks(ctx, sync)
	if err != nil {
		return fmt.Errorf("failed to list networks: %w", err)
	}

	if asJSON {
		out := make([]networkJSON, 0, len(networks))
		for _, n := range networks {
			out = append(out, networkJSON{
				ESSID:     n.ESSID,
				BSSID:     n.BSSID,
				Signal:    n.Signal,
				Encrypted: n.Encrypted,
				Known:     n.IsKnown(),
				Profile:   string(n.Service),
			})
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, n := range networks {
		fmt.Fprintln(a.stdout, wifi.FormatMenuLine(i, n))
	}
	return nil
}

func (a *app) store() *netctl.Store {
	return &netctl.Store{Dir: a.opts.ProfileDir, DryRun: a.dryRun(), Logger: a.logger}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// runProfiles prints matching netctl profiles, one per line:
// id, connection, interface and, for wireless profiles, essid.
func (a *app) runProfiles(ifaceName, essid, id string) error {
	profiles, err := a.store().Load()
	if err != nil {
		return err
	}
	for _, p := range netctl.FindWifi(profiles, netctl.WifiFilter{
		Interface: optional(ifaceName),
		ID:        optional(id),
		ESSID:     optional(essid),
	}) {
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n", p.ID, netctl.KindWifi, p.Interface, p.ESSID)
	}
	if essid != "" {
		return nil
	}
	for _, p := range netctl.FindWired(profiles, netctl.WiredFilter{
		Interface: optional(ifaceName),
		ID:        optional(id),
	}) {
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\n", p.ID, netctl.KindWired, p.Interface)
	}
	return nil
}

func (a *app) runQR(id string, inverse bool) error {
	profiles, err := a.store().Load()
	if err != nil {
		return err
	}
	found := netctl.FindWifi(profiles, netctl.WifiFilter{ID: &id})
	if len(found) == 0 {
		return fmt.Errorf("wireless profile %s: %w", id, wifi.ErrNotFound)
	}
	p := found[0]
	code, err := qrwifi.Render(qrwifi.Payload(p.ESSID, p.Key, false), inverse)
	if err != nil {
		return fmt.Errorf("failed to render QR code: %w", err)
	}
	fmt.Fprint(a.stdout, code)
	return nil
}

func (a *app) runWired(ctx context.Context, ifaceName string) error {
	if ifaceName == "" {
		var err error
		ifaceName, err = iface.Detect(ctx, false)
		if err != nil {
			return fmt.Errorf("no --interface given: %w", err)
		}
	}
	id, written, err := a.store().EnsureWired(ifaceName)
	if err != nil {
		return err
	}
	if written {
		a.logger.Info("saved profile", "interface", ifaceName, "profile", id)
	}
	fmt.Fprintln(a.stdout, id)
	return nil
}

// run parses args and runs the chosen command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	return a.command().ParseAndRun(ctx, args)
}

func (a *app) command() *ffcli.Command {
	rootFlagSet := flag.NewFlagSet("wifimenu", flag.ContinueOnError)
	rootFlagSet.SetOutput(a.stderr)
	a.opts.register(rootFlagSet)

	// exec wraps a subcommand with the shared setup and teardown.
	exec := func(fn func(ctx context.Context, args []string) error) func(context.Context, []string) error {
		return func(ctx context.Context, args []string) error {
			if a.opts.Version {
				fmt.Fprintln(a.stdout, Version)
				return nil
			}
			if err := a.setup(); err != nil {
				return err
			}
			defer a.finish()
			return fn(ctx, args)
		}
	}

	listFlagSet := flag.NewFlagSet("list", flag.ContinueOnError)
	listFlagSet.SetOutput(a.stderr)
	listJSON := listFlagSet.Bool("json", false, "output in JSON format")
	listSync := listFlagSet.Bool("sync", false, "force a fresh scan")
	listCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: "wifimenu [flags] list [--json] [--sync]",
		ShortHelp:  "List visible networks",
		FlagSet:    listFlagSet,
		Exec: exec(func(ctx context.Context, args []string) error {
			return a.runList(ctx, *listJSON, *listSync)
		}),
	}

	profilesFlagSet := flag.NewFlagSet("profiles", flag.ContinueOnError)
	profilesFlagSet.SetOutput(a.stderr)
	profilesInterface := profilesFlagSet.String("interface", "", "only profiles bound to this interface")
	profilesESSID := profilesFlagSet.String("essid", "", "only wireless profiles for this essid")
	profilesID := profilesFlagSet.String("id", "", "only the profile with this identifier")
	profilesCmd := &ffcli.Command{
		Name:       "profiles",
		ShortUsage: "wifimenu [flags] profiles [--interface <if>] [--essid <essid>] [--id <id>]",
		ShortHelp:  "List netctl profiles",
		FlagSet:    profilesFlagSet,
		Exec: exec(func(ctx context.Context, args []string) error {
			return a.runProfiles(*profilesInterface, *profilesESSID, *profilesID)
		}),
	}

	qrFlagSet := flag.NewFlagSet("qr", flag.ContinueOnError)
	qrFlagSet.SetOutput(a.stderr)
	qrInverse := qrFlagSet.Bool("inverse", false, "invert colors for light terminals")
	qrCmd := &ffcli.Command{
		Name:       "qr",
		ShortUsage: "wifimenu [flags] qr <profile-id>",
		ShortHelp:  "Show a QR code for joining a saved wireless network",
		FlagSet:    qrFlagSet,
		Exec: exec(func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("qr requires a profile id: %w", wifi.ErrInvalidOption)
			}
			return a.runQR(args[0], *qrInverse)
		}),
	}

	wiredFlagSet := flag.NewFlagSet("wired", flag.ContinueOnError)
	wiredFlagSet.SetOutput(a.stderr)
	wiredInterface := wiredFlagSet.String("interface", "", "ethernet interface, detected when empty")
	wiredCmd := &ffcli.Command{
		Name:       "wired",
		ShortUsage: "wifimenu [flags] wired [--interface <if>]",
		ShortHelp:  "Write an ethernet profile unless one exists",
		FlagSet:    wiredFlagSet,
		Exec: exec(func(ctx context.Context, args []string) error {
			return a.runWired(ctx, *wiredInterface)
		}),
	}

	return &ffcli.Command{
		Name:        "wifimenu",
		ShortUsage:  "wifimenu [flags] [<subcommand> [args...]]",
		ShortHelp:   "Choose a wireless network",
		FlagSet:     rootFlagSet,
		Subcommands: []*ffcli.Command{listCmd, profilesCmd, qrCmd, wiredCmd},
		Options: []ff.Option{
			ff.WithEnvVarPrefix("WIFIMENU"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(config.Parser),
			ff.WithAllowMissingConfigFile(true),
		},
		Exec: exec(func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown command %q: %w", args[0], wifi.ErrInvalidOption)
			}
			return a.runSelect(ctx)
		}),
	}
}
