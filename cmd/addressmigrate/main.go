package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - status:  Report how many properties still embed their address
// - migrate: Replace embedded addresses with canonical references

func main() {
	os.Exit(run())
}

// run returns the process exit code.
func run() int {
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	// status parameters
	statusJSON := statusCmd.Bool("json", false, "Print the status as JSON")

	// migrate parameters
	migrateDryRun := migrateCmd.Bool("dry-run", false, "Report what would change without writing")
	migrateBatchSize := migrateCmd.Int("batch-size", 0, "Properties per batch (0 uses config)")
	migrateConcurrency := migrateCmd.Int("concurrency", 0, "Distinct addresses resolved in parallel (0 uses config)")
	migrateMetricsAddr := migrateCmd.String("metrics-addr", "", "Serve /metrics and /migration/status on this address while running")
	migrateJSON := migrateCmd.Bool("json", false, "Print the report as JSON")

	if len(os.Args) < 2 {
		printUsage()

		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flags := cliFlags{
		Status: statusFlags{
			cmd:  statusCmd,
			json: statusJSON,
		},
		Migrate: migrateFlags{
			cmd:         migrateCmd,
			dryRun:      migrateDryRun,
			batchSize:   migrateBatchSize,
			concurrency: migrateConcurrency,
			metricsAddr: migrateMetricsAddr,
			json:        migrateJSON,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return exitCode(err)
	}

	return 0
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errIncompleteMigration):
		return 2
	default:
		return 1
	}
}

type cliFlags struct {
	Status  statusFlags
	Migrate migrateFlags
}

type statusFlags struct {
	cmd  *flag.FlagSet
	json *bool
}

type migrateFlags struct {
	cmd         *flag.FlagSet
	dryRun      *bool
	batchSize   *int
	concurrency *int
	metricsAddr *string
	json        *bool
}

func runSubcommand(ctx context.Context, flags *cliFlags) error {
	switch os.Args[1] {
	case "status":
		return handleStatus(ctx, flags)
	case "migrate":
		return handleMigrate(ctx, flags)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func handleStatus(ctx context.Context, flags *cliFlags) error {
	if err := flags.Status.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse status flags")
	}

	return runStatus(ctx, os.Stdout, *flags.Status.json)
}

func handleMigrate(ctx context.Context, flags *cliFlags) error {
	if err := flags.Migrate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse migrate flags")
	}

	if *flags.Migrate.batchSize < 0 || *flags.Migrate.concurrency < 0 {
		return errors.New("--batch-size and --concurrency must not be negative")
	}

	return runMigrate(ctx, os.Stdout, migrateRequest{
		dryRun:      *flags.Migrate.dryRun,
		batchSize:   *flags.Migrate.batchSize,
		concurrency: *flags.Migrate.concurrency,
		metricsAddr: *flags.Migrate.metricsAddr,
		json:        *flags.Migrate.json,
	})
}

func printUsage() {
	fmt.Println("Usage: addressmigrate <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  status     Report embedded, referenced and invalid property counts")
	fmt.Println("  migrate    Move embedded property addresses to canonical address records")
	fmt.Println("")
	fmt.Println("Both commands are safe to run repeatedly.")
	fmt.Println("Use 'addressmigrate <command> -h' for more information about a command.")
}
