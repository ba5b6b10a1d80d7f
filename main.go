// Package main implements apim-gov, a terminal console for API governance compliance,
// governance policies and API subscription policies.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/cmd"
	"github.com/EmundoT/apim-governance/internal/core"
	"github.com/EmundoT/apim-governance/internal/tui"
	"github.com/EmundoT/apim-governance/internal/types"
	"github.com/EmundoT/apim-governance/internal/version"
)

// cliOptions are the flags every command understands.
type cliOptions struct {
	flags   core.NonInteractiveFlags
	verbose bool
}

// parseCommonFlags extracts common non-interactive flags from args
// Returns: options, remainingArgs
func parseCommonFlags(args []string) (cliOptions, []string) {
	var opts cliOptions
	var remaining []string

	for _, arg := range args {
		switch arg {
		case "--yes", "-y":
			opts.flags.Yes = true
		case "--quiet", "-q":
			opts.flags.Mode = core.OutputQuiet
		case "--json":
			opts.flags.Mode = core.OutputJSON
		case "--verbose", "-v":
			opts.verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining
}

// takeFlag removes "--name value" (or "--name=value") from args.
func takeFlag(args []string, name string) (string, []string, bool) {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return args[i+1], rest, true
		}
		if strings.HasPrefix(arg, name+"=") {
			rest := append(append([]string{}, args[:i]...), args[i+1:]...)
			return strings.TrimPrefix(arg, name+"="), rest, true
		}
	}
	return "", args, false
}

// takeBool removes any of names from args and reports whether one was present.
func takeBool(args []string, names ...string) (bool, []string) {
	found := false
	var rest []string
	for _, arg := range args {
		matched := false
		for _, n := range names {
			if arg == n {
				matched = true
				break
			}
		}
		if matched {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}

// newCallback picks the interactive or non-interactive callback.
func newCallback(flags core.NonInteractiveFlags) core.UICallback {
	if flags.Yes || flags.Mode != core.OutputNormal || !isatty.IsTerminal(os.Stdin.Fd()) {
		return tui.NewNonInteractiveTUICallback(flags)
	}
	return tui.NewTUICallback()
}

// fail reports err in the selected output mode and returns the exit code.
// Cancellation is silent.
func fail(opts cliOptions, title string, err error) int {
	if core.IsCancelled(err) {
		return core.ExitCancelled
	}
	switch opts.flags.Mode {
	case core.OutputJSON:
		return core.EmitCLIError(core.CLIErrorCodeForError(err), err.Error(), core.CLIExitCodeForError(err))
	case core.OutputQuiet:
		fmt.Fprintln(os.Stderr, err)
	default:
		tui.PrintError(title, err.Error())
	}
	return core.CLIExitCodeForError(err)
}

// usage reports a usage error.
func usage(opts cliOptions, text string) int {
	if opts.flags.Mode == core.OutputJSON {
		return core.EmitCLIError(core.ErrCodeInvalidArguments, "usage: "+text, core.ExitInvalidArguments)
	}
	tui.PrintError("Usage", text)
	return core.ExitInvalidArguments
}

func main() {
	if len(os.Args) < 2 {
		tui.PrintHelp()
		os.Exit(0)
	}

	command := os.Args[1]

	switch command {
	case "--help", "-h", "help":
		tui.PrintHelp()
		os.Exit(0)
	case "--version", "version":
		fmt.Printf("apim-gov %s\n", version.GetFullVersion())
		os.Exit(0)
	case "completion":
		os.Exit(runCompletion(os.Args[2:]))
	}

	opts, args := parseCommonFlags(os.Args[2:])

	logger, err := core.NewLogger(opts.verbose)
	if err != nil {
		tui.PrintError("Logger", err.Error())
		os.Exit(1)
	}
	logger.Debug("running command", zap.String("command", command), zap.Stringer("output", opts.flags.Mode))

	// os.Exit skips defers; stop and Sync run explicitly before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	manager := core.NewManager(logger)
	manager.SetUICallback(newCallback(opts.flags))

	if command != "init" && !core.IsInitialized() {
		code := fail(opts, "Not Initialized", core.ErrNotInitialized)
		stop()
		os.Exit(code)
	}

	var code int
	switch command {
	case "init":
		code = runInit(manager, opts)
	case "config":
		code = runConfig(manager, opts, args)
	case "artifact":
		code = runArtifact(manager, opts, args)
	case "compliance":
		code = runCompliance(ctx, manager, opts, args, logger)
	case "overview":
		code = runOverview(ctx, manager, opts)
	case "watch":
		code = runWatch(ctx, manager, opts)
	case "policies":
		code = runPolicies(ctx, manager, opts, args)
	case "delete-policy":
		code = runDeletePolicy(ctx, manager, opts, args)
	case "violations":
		code = runViolations(ctx, manager, opts, args)
	case "subscription-policies":
		code = runSubscriptionPolicies(ctx, manager, opts, args)
	default:
		tui.PrintError("Unknown Command", fmt.Sprintf("'%s' is not a valid apim-gov command", command))
		fmt.Println()
		tui.PrintHelp()
		code = core.ExitInvalidArguments
	}

	_ = logger.Sync()
	stop()
	os.Exit(code)
}

func runCompletion(args []string) int {
	if len(args) < 1 {
		tui.PrintError("Usage", "apim-gov completion <shell>\nSupported shells: bash, zsh, fish, powershell")
		return core.ExitInvalidArguments
	}

	var script string
	switch args[0] {
	case "bash":
		script = cmd.GenerateBashCompletion()
	case "zsh":
		script = cmd.GenerateZshCompletion()
	case "fish":
		script = cmd.GenerateFishCompletion()
	case "powershell":
		script = cmd.GeneratePowerShellCompletion()
	default:
		tui.PrintError("Invalid Shell", fmt.Sprintf("'%s' is not supported. Use: bash, zsh, fish, or powershell", args[0]))
		return core.ExitInvalidArguments
	}
	fmt.Println(script)
	return core.ExitSuccess
}

func runInit(manager *core.Manager, opts cliOptions) int {
	if err := manager.Init(); err != nil {
		return fail(opts, "Initialization Failed", err)
	}
	if opts.flags.Mode == core.OutputJSON {
		core.EmitCLISuccess(map[string]string{"config": manager.ConfigPath()})
		return core.ExitSuccess
	}
	if opts.flags.Mode != core.OutputQuiet {
		tui.PrintSuccess("Initialized " + manager.ConfigPath())
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  apim-gov config set server.base_url <url>")
		fmt.Println("  apim-gov artifact add <id>")
	}
	return core.ExitSuccess
}

func runConfig(manager *core.Manager, opts cliOptions, args []string) int {
	if len(args) < 2 {
		return usage(opts, "apim-gov config get <key> | config set <key> <value>")
	}
	svc := manager.Configs()

	switch args[0] {
	case "get":
		value, err := svc.GetConfigValue(args[1])
		if err != nil {
			return fail(opts, "Config", err)
		}
		if opts.flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(map[string]interface{}{"key": args[1], "value": value})
			return core.ExitSuccess
		}
		fmt.Println(value)
	case "set":
		if len(args) < 3 {
			return usage(opts, "apim-gov config set <key> <value>")
		}
		if err := svc.SetConfigValue(args[1], args[2]); err != nil {
			return fail(opts, "Config", err)
		}
		if opts.flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(map[string]interface{}{"key": args[1]})
		} else if opts.flags.Mode != core.OutputQuiet {
			tui.PrintSuccess(fmt.Sprintf("Set %s", args[1]))
		}
	default:
		return usage(opts, "apim-gov config get <key> | config set <key> <value>")
	}
	return core.ExitSuccess
}

func runArtifact(manager *core.Manager, opts cliOptions, args []string) int {
	if len(args) < 1 {
		return usage(opts, "apim-gov artifact add|remove|select|list")
	}
	svc := manager.Configs()
	sub, args := args[0], args[1:]

	name, args, _ := takeFlag(args, "--name")
	revision, args := takeBool(args, "--revision")

	var err error
	var done string
	switch sub {
	case "list":
		cfg, lerr := manager.Config()
		if lerr != nil {
			return fail(opts, "Config", lerr)
		}
		if opts.flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(map[string]interface{}{"artifacts": cfg.Artifacts, "selected": cfg.Selected})
			return core.ExitSuccess
		}
		fmt.Println(tui.RenderArtifacts(cfg.Artifacts, cfg.Selected))
		return core.ExitSuccess
	case "add", "remove", "select":
		if len(args) < 1 {
			return usage(opts, fmt.Sprintf("apim-gov artifact %s <id>", sub))
		}
	default:
		return usage(opts, "apim-gov artifact add|remove|select|list")
	}

	id := args[0]
	switch sub {
	case "add":
		err = svc.AddArtifact(types.ArtifactRef{ID: id, Name: name, Revision: revision})
		done = "Added " + id
	case "remove":
		err = svc.RemoveArtifact(id)
		done = "Removed " + id
	case "select":
		err = svc.SelectArtifact(id)
		done = "Selected " + id
	}
	if err != nil {
		return fail(opts, "Artifact", err)
	}
	if opts.flags.Mode == core.OutputJSON {
		core.EmitCLISuccess(map[string]string{"artifact": id})
	} else if opts.flags.Mode != core.OutputQuiet {
		tui.PrintSuccess(done)
	}
	return core.ExitSuccess
}

// resolveArtifact finds id among the tracked artifacts, falling back to the selection
// when id is empty. Unknown ids are used as-is.
func resolveArtifact(cfg types.ConsoleConfig, id string, revision bool) (types.ArtifactRef, error) {
	if id == "" {
		ref, ok := core.SelectedArtifact(cfg)
		if !ok {
			return types.ArtifactRef{}, errors.New("no artifact given and none tracked")
		}
		return ref, nil
	}
	if ref := core.FindArtifact(cfg.Artifacts, id); ref != nil {
		r := *ref
		r.Revision = r.Revision || revision
		return r, nil
	}
	return types.ArtifactRef{ID: id, Revision: revision}, nil
}

func runCompliance(ctx context.Context, manager *core.Manager, opts cliOptions, args []string, logger *zap.Logger) int {
	revision, args := takeBool(args, "--revision")
	interactive, args := takeBool(args, "--interactive", "-i")

	cfg, err := manager.Config()
	if err != nil {
		return fail(opts, "Config", err)
	}
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	if interactive {
		client, err := manager.Client()
		if err != nil {
			return fail(opts, "Config", err)
		}
		artifacts := cfg.Artifacts
		start := 0
		if ref, rerr := resolveArtifact(cfg, id, revision); rerr == nil {
			if core.FindArtifact(artifacts, ref.ID) == nil {
				artifacts = append([]types.ArtifactRef{ref}, artifacts...)
			}
			for i, a := range artifacts {
				if a.ID == ref.ID {
					start = i
				}
			}
		}
		if err := tui.RunComplianceScreen(ctx, client, artifacts, start, logger); err != nil {
			return fail(opts, "Compliance", err)
		}
		return core.ExitSuccess
	}

	ref, err := resolveArtifact(cfg, id, revision)
	if err != nil {
		return usage(opts, "apim-gov compliance <artifact-id> [--revision] [--interactive]")
	}

	summary, skipped, err := manager.Compliance(ctx, ref)
	if opts.flags.Mode == core.OutputJSON {
		if err != nil {
			return fail(opts, "Compliance", err)
		}
		core.EmitCLISuccess(map[string]interface{}{"artifact": ref, "skipped": skipped, "summary": summary})
		return core.ExitSuccess
	}
	if core.IsCancelled(err) {
		return core.ExitCancelled
	}
	if opts.flags.Mode != core.OutputQuiet {
		tui.PrintComplianceState(types.ComplianceState{Summary: summary, Skipped: skipped, Err: err}, ref)
	} else if err == nil {
		fmt.Printf("%s passed=%d failed=%d\n", ref.ID, summary.Counts.Passed, summary.Counts.Failed)
	}
	if err != nil {
		return core.CLIExitCodeForError(err)
	}
	return core.ExitSuccess
}

// overviewEntry is the JSON shape of one overview row.
type overviewEntry struct {
	Artifact types.ArtifactRef       `json:"artifact"`
	Summary  types.ComplianceSummary `json:"summary"`
	Skipped  bool                    `json:"skipped,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func runOverview(ctx context.Context, manager *core.Manager, opts cliOptions) int {
	artifacts, err := manager.Artifacts()
	if err != nil {
		return fail(opts, "Config", err)
	}
	progress := tui.NewProgressTracker(opts.flags.Mode, len(artifacts), "Fetching compliance")
	results, err := manager.Overview(ctx, progress)
	if err != nil {
		progress.Fail(err)
		return fail(opts, "Overview", err)
	}
	if ctx.Err() != nil {
		return core.ExitCancelled
	}

	_, failed := core.OverviewTotals(results)
	switch opts.flags.Mode {
	case core.OutputJSON:
		entries := make([]overviewEntry, len(results))
		for i, r := range results {
			entries[i] = overviewEntry{Artifact: r.Artifact, Summary: r.Summary, Skipped: r.Skipped}
			if r.Err != nil {
				entries[i].Error = r.Err.Error()
			}
		}
		core.EmitCLISuccess(map[string]interface{}{"artifacts": entries, "failed": failed})
	case core.OutputQuiet:
		for _, r := range results {
			fmt.Printf("%s passed=%d failed=%d\n", r.Artifact.ID, r.Summary.Counts.Passed, r.Summary.Counts.Failed)
		}
	default:
		fmt.Println(tui.RenderOverview(results))
	}

	if failed > 0 {
		return core.ExitFetchFailed
	}
	return core.ExitSuccess
}

func runWatch(ctx context.Context, manager *core.Manager, opts cliOptions) int {
	if opts.flags.Mode == core.OutputNormal {
		tui.PrintInfo(fmt.Sprintf("Watching %s (Ctrl+C to stop)", manager.ConfigPath()))
	}
	err := manager.Watch(ctx, func(state types.ComplianceState) {
		ref := types.ArtifactRef{ID: state.Summary.ArtifactID}
		switch opts.flags.Mode {
		case core.OutputJSON:
			entry := overviewEntry{Artifact: ref, Summary: state.Summary, Skipped: state.Skipped}
			if state.Err != nil {
				entry.Error = state.Err.Error()
			}
			if !state.Loading {
				core.EmitCLISuccess(entry)
			}
		case core.OutputQuiet:
		default:
			fmt.Println()
			tui.PrintComplianceState(state, ref)
		}
	})
	if err != nil {
		return fail(opts, "Watch Failed", err)
	}
	return core.ExitSuccess
}

func runPolicies(ctx context.Context, manager *core.Manager, opts cliOptions, args []string) int {
	query, _, _ := takeFlag(args, "--search")
	svc, err := manager.Policies()
	if err != nil {
		return fail(opts, "Config", err)
	}
	rows, err := svc.List(ctx, query)
	if err != nil {
		return fail(opts, "Policies", err)
	}

	switch opts.flags.Mode {
	case core.OutputJSON:
		core.EmitCLISuccess(map[string]interface{}{"policies": rows, "count": len(rows)})
	case core.OutputQuiet:
		for _, r := range rows {
			fmt.Printf("%s\t%s\n", r.ID, r.Name)
		}
	default:
		fmt.Println(tui.RenderPolicyTable(rows))
		tui.PrintInfo(core.Pluralize(len(rows), "policy", "policies"))
	}
	return core.ExitSuccess
}

func runDeletePolicy(ctx context.Context, manager *core.Manager, opts cliOptions, args []string) int {
	if len(args) < 1 {
		return usage(opts, "apim-gov delete-policy <id> [--yes]")
	}
	id := args[0]
	svc, err := manager.Policies()
	if err != nil {
		return fail(opts, "Config", err)
	}
	deleted, err := svc.Delete(ctx, id)
	if err != nil {
		return fail(opts, "Delete Failed", err)
	}
	if !deleted {
		if opts.flags.Mode == core.OutputNormal {
			fmt.Println("Cancelled.")
		}
		return core.ExitGeneralError
	}
	if opts.flags.Mode == core.OutputJSON {
		core.EmitCLISuccess(map[string]string{"deleted": id})
	} else if opts.flags.Mode != core.OutputQuiet {
		tui.PrintSuccess("Deleted policy " + id)
	}
	return core.ExitSuccess
}

func runViolations(ctx context.Context, manager *core.Manager, opts cliOptions, args []string) int {
	severity, args, _ := takeFlag(args, "--severity")
	if len(args) < 2 {
		return usage(opts, "apim-gov violations <artifact-id> <ruleset-id> [--severity ERROR|WARN|INFO]")
	}
	detail, counts, err := manager.Violations(ctx, args[0], args[1], severity)
	if err != nil {
		return fail(opts, "Violations", err)
	}

	switch opts.flags.Mode {
	case core.OutputJSON:
		core.EmitCLISuccess(map[string]interface{}{"ruleset": detail, "counts": counts})
	case core.OutputQuiet:
		fmt.Println(core.SeveritySummaryLine(counts))
	default:
		fmt.Println(tui.RenderViolations(detail, counts))
	}
	return core.ExitSuccess
}

func runSubscriptionPolicies(ctx context.Context, manager *core.Manager, opts cliOptions, args []string) int {
	set, args, hasSet := takeFlag(args, "--set")
	if len(args) < 1 {
		return usage(opts, "apim-gov subscription-policies <api-id> [--set <p1,p2>] [--yes]")
	}
	apiID := args[0]

	svc, err := manager.Subscriptions()
	if err != nil {
		return fail(opts, "Config", err)
	}
	sel, err := svc.Load(ctx, apiID)
	if err != nil {
		return fail(opts, "Subscription Policies", err)
	}
	toggle := svc.Options(sel.API)

	var next []string
	switch {
	case hasSet:
		var chosen []string
		for _, p := range strings.Split(set, ",") {
			if p = strings.TrimSpace(p); p != "" {
				chosen = append(chosen, p)
			}
		}
		next = core.ApplySelection(sel.Selected, chosen, toggle)
	case opts.flags.Mode != core.OutputNormal || !isatty.IsTerminal(os.Stdin.Fd()):
		if opts.flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(sel)
		} else {
			fmt.Println(strings.Join(sel.Selected, "\n"))
		}
		return core.ExitSuccess
	default:
		next, err = tui.RunSubscriptionWizard(sel, toggle)
		if err != nil {
			fmt.Println("Aborted.")
			return core.ExitGeneralError
		}
		if sel.API.IsRevision {
			return core.ExitSuccess
		}
		if !tui.ConfirmSelection(sel.Selected, next) {
			return core.ExitSuccess
		}
	}

	if hasSet && !opts.flags.Yes {
		return usage(opts, "--set changes subscription policies; add --yes to confirm")
	}
	if sel.API.IsRevision {
		return fail(opts, "Subscription Policies", fmt.Errorf("api %s is a revision; subscription policies are read-only", apiID))
	}
	if err := svc.Save(ctx, apiID, next); err != nil {
		return fail(opts, "Save Failed", err)
	}

	if opts.flags.Mode == core.OutputJSON {
		core.EmitCLISuccess(map[string]interface{}{"api": apiID, "policies": next})
	} else if opts.flags.Mode != core.OutputQuiet {
		tui.PrintSuccess(fmt.Sprintf("Saved %s for %s", core.Pluralize(len(next), "subscription policy", "subscription policies"), apiID))
	}
	return core.ExitSuccess
}
