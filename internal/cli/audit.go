package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yukikurage/quest-tracker-api/internal/database"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
	"github.com/yukikurage/quest-tracker-api/internal/services"
	"gorm.io/gorm"
)

// ErrIntegrityViolations is returned by the audit command when the graph is inconsistent.
var ErrIntegrityViolations = errors.New("quest graph has integrity violations")

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check every quest for exactly one owner and one category edge",
		Long: `Run the integrity audit once and print the report.

Exits with a non-zero status when any violation is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return runAudit(cmd.Context(), db, cmd.OutOrStdout())
		},
	}
}

func runAudit(ctx context.Context, db *gorm.DB, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := services.NewAuditService(repository.NewQuestRepository(db)).Run(ctx)
	if err != nil {
		return err
	}

	printSection(out, "quests without owner", report.QuestsWithoutOwner)
	printSection(out, "quests without category", report.QuestsWithoutCategory)
	printSection(out, "dangling owner edges", report.DanglingOwnerEdges)
	printSection(out, "dangling category edges", report.DanglingCategoryEdges)
	printSection(out, "edges to missing nodes", report.EdgesToMissingNodes)

	if !report.Clean() {
		return ErrIntegrityViolations
	}
	fmt.Fprintln(out, "ok: quest graph is consistent")
	return nil
}

func printSection(out io.Writer, title string, ids []string) {
	fmt.Fprintf(out, "%s: %d\n", title, len(ids))
	for _, id := range ids {
		fmt.Fprintf(out, "  - %s\n", id)
	}
}
