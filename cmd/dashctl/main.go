// dashctl inspects and maintains the dashboard document offline, using the
// same configuration as the server.
//
// Usage:
//
//	dashctl show           Print the stored document
//	dashctl refresh        Regenerate the daily data if it is stale
//	dashctl links          List links as a table
//	dashctl seed <file>    Append the links of a YAML seed file
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/scratchboard/dashboard/internal/bootstrap"
	"github.com/scratchboard/dashboard/internal/config"
	"github.com/scratchboard/dashboard/internal/dashboard"
	"github.com/scratchboard/dashboard/internal/dashboard/service"
	"github.com/scratchboard/dashboard/pkg/logger"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		printUsage(os.Stderr)
		if len(os.Args) < 2 {
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	repo, cleanup, err := bootstrap.OpenRepository(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	svc, err := bootstrap.NewService(cfg, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, svc, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *service.Service, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "show":
		doc, err := svc.Document(ctx)
		if err != nil {
			return err
		}
		return writeJSON(out, doc)
	case "refresh":
		doc, err := svc.Refresh(ctx)
		if err != nil {
			return err
		}
		return writeJSON(out, doc.DailyData)
	case "links":
		links, err := svc.ListLinks(ctx)
		if err != nil {
			return err
		}
		return writeLinks(out, links)
	case "seed":
		if len(args) != 1 {
			return fmt.Errorf("usage: dashctl seed <file>")
		}
		seed, err := dashboard.LoadSeedFile(args[0])
		if err != nil {
			return err
		}
		entries, err := seed.Entries()
		if err != nil {
			return err
		}
		n, err := svc.ImportLinks(ctx, entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d links\n", n)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

func writeLinks(out io.Writer, links []dashboard.LinkEntry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOUSE\tSTATUS\tLINK")
	for _, l := range links {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.HouseName, l.Status, l.Link)
	}
	return tw.Flush()
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: dashctl <command> [args]

Commands:
  show           Print the stored document
  refresh        Regenerate the daily data if it is stale
  links          List links as a table
  seed <file>    Append the links of a YAML seed file
`)
}
