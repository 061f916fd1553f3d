// Command inbox reads and triages contact messages from the configured store.
//
//	inbox list [--status unread] [-o table|json|yaml]
//	inbox mark <id> [status]
//	inbox portfolio [section]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the services a command runs against. It is built lazily so
// --help works without a reachable store.
type app struct {
	cfg       *config.Config
	contacts  service.ContactService
	portfolio service.PortfolioService
	close     func()
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// stdout carries command output; logs go to stderr.
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel))

	local := storage.NewLocalStorage(cfg.DataDir)
	store, closeStore, err := repository.OpenContactStore(ctx, repository.StoreOptions{
		Driver:      cfg.StoreDriver,
		Local:       local,
		MessagesKey: cfg.MessagesFile,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		contacts:  service.NewContactService(store),
		portfolio: service.NewPortfolioService(repository.NewFilePortfolioRepository(local, cfg.PortfolioFile)),
		close:     closeStore,
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "inbox",
		Short:        "Inspect portfolio contact messages",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newMarkCmd(), newPortfolioCmd())
	return root
}

func newListCmd() *cobra.Command {
	var status, output string
	var oldestFirst bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			opts := model.ContactListOptions{Status: status, Sort: "desc"}
			if oldestFirst {
				opts.Sort = "asc"
			}
			messages, err := a.contacts.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeMessages(cmd.OutOrStdout(), messages, output)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only messages with this status (unread, read, ...)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&oldestFirst, "oldest-first", false, "order by timestamp ascending")
	return cmd
}

func newMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <id> [status]",
		Short: "Set the status of a message (default: read)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid message id %q", args[0])
			}
			status := ""
			if len(args) == 2 {
				status = args[1]
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			msg, err := a.contacts.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "message %d status updated to %s\n", msg.ID, msg.Status)
			return nil
		},
	}
}

func newPortfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio [section]",
		Short: "Print the portfolio document or one of its sections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			var v any
			if len(args) == 1 {
				raw, err := a.portfolio.Section(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				v = raw
			} else {
				doc, err := a.portfolio.Get(cmd.Context())
				if err != nil {
					return err
				}
				v = doc
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
}

func writeMessages(w io.Writer, messages []*model.ContactMessage, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(messages)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(toYAML(messages))
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tTIMESTAMP\tFROM\tSUBJECT")
		for _, m := range messages {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s <%s>\t%s\n", m.ID, m.Status, m.Timestamp, m.Name, m.Email, m.Subject)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// yamlMessage mirrors the JSON field names of model.ContactMessage.
type yamlMessage struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone,omitempty"`
	Subject   string `yaml:"subject"`
	Message   string `yaml:"message"`
	Timestamp string `yaml:"timestamp"`
	Status    string `yaml:"status"`
}

func toYAML(messages []*model.ContactMessage) []yamlMessage {
	out := make([]yamlMessage, len(messages))
	for i, m := range messages {
		out[i] = yamlMessage{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Subject:   m.Subject,
			Message:   m.Message,
			Timestamp: m.Timestamp.String(),
			Status:    m.Status,
		}
	}
	return out
}
