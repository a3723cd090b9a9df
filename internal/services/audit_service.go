package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yukikurage/quest-tracker-api/internal/repository"
)

// AuditService checks that every quest keeps exactly one OWNS and one
// CATEGORIZED_AS edge and that no edge points at a missing node.
type AuditService struct {
	questRepo repository.QuestRepository
}

func NewAuditService(questRepo repository.QuestRepository) *AuditService {
	return &AuditService{questRepo: questRepo}
}

// Run audits the graph once and logs every violation found.
func (s *AuditService) Run(ctx context.Context) (*repository.IntegrityReport, error) {
	report, err := s.questRepo.Audit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to audit quest graph: %w", err)
	}

	if report.Clean() {
		slog.Info("quest graph audit passed")
		return report, nil
	}

	slog.Warn("quest graph audit found violations",
		"quests_without_owner", report.QuestsWithoutOwner,
		"quests_without_category", report.QuestsWithoutCategory,
		"dangling_owner_edges", report.DanglingOwnerEdges,
		"dangling_category_edges", report.DanglingCategoryEdges,
		"edges_to_missing_nodes", report.EdgesToMissingNodes,
	)
	return report, nil
}
