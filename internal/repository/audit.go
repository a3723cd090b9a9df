package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// IntegrityReport lists graph elements that break the edge invariants.
type IntegrityReport struct {
	QuestsWithoutOwner    []string `json:"quests_without_owner"`
	QuestsWithoutCategory []string `json:"quests_without_category"`
	DanglingOwnerEdges    []string `json:"dangling_owner_edges"`
	DanglingCategoryEdges []string `json:"dangling_category_edges"`
	EdgesToMissingNodes   []string `json:"edges_to_missing_nodes"`
}

// Clean reports whether no violation was found.
func (r *IntegrityReport) Clean() bool {
	return len(r.QuestsWithoutOwner) == 0 &&
		len(r.QuestsWithoutCategory) == 0 &&
		len(r.DanglingOwnerEdges) == 0 &&
		len(r.DanglingCategoryEdges) == 0 &&
		len(r.EdgesToMissingNodes) == 0
}

type auditRow struct {
	ID string
}

// Audit scans the whole graph. It reads only and takes no locks.
func (r *GormQuestRepository) Audit(ctx context.Context) (*IntegrityReport, error) {
	report := &IntegrityReport{}

	checks := []struct {
		name   string
		query  sq.SelectBuilder
		target *[]string
	}{
		{
			name: "quests without owner",
			query: sq.Select("quests.id AS id").From("quests").
				LeftJoin("owns_edges ON owns_edges.quest_id = quests.id").
				Where(sq.Eq{"owns_edges.quest_id": nil}),
			target: &report.QuestsWithoutOwner,
		},
		{
			name: "quests without category",
			query: sq.Select("quests.id AS id").From("quests").
				LeftJoin("categorized_as_edges ON categorized_as_edges.quest_id = quests.id").
				Where(sq.Eq{"categorized_as_edges.quest_id": nil}),
			target: &report.QuestsWithoutCategory,
		},
		{
			name: "dangling owner edges",
			query: sq.Select("owns_edges.quest_id AS id").From("owns_edges").
				LeftJoin("quests ON quests.id = owns_edges.quest_id").
				Where(sq.Eq{"quests.id": nil}),
			target: &report.DanglingOwnerEdges,
		},
		{
			name: "dangling category edges",
			query: sq.Select("categorized_as_edges.quest_id AS id").From("categorized_as_edges").
				LeftJoin("quests ON quests.id = categorized_as_edges.quest_id").
				Where(sq.Eq{"quests.id": nil}),
			target: &report.DanglingCategoryEdges,
		},
		{
			name: "edges to missing users",
			query: sq.Select("owns_edges.quest_id AS id").From("owns_edges").
				LeftJoin("users ON users.id = owns_edges.user_id").
				Where(sq.Eq{"users.id": nil}),
			target: &report.EdgesToMissingNodes,
		},
		{
			name: "edges to missing categories",
			query: sq.Select("categorized_as_edges.quest_id AS id").From("categorized_as_edges").
				LeftJoin("categories ON categories.id = categorized_as_edges.category_id").
				Where(sq.Eq{"categories.id": nil}),
			target: &report.EdgesToMissingNodes,
		},
	}

	for _, check := range checks {
		query, args, err := check.query.OrderBy("1").ToSql()
		if err != nil {
			return nil, fmt.Errorf("build %s query: %w", check.name, err)
		}

		var rows []auditRow
		if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("audit %s: %w", check.name, err)
		}
		for _, row := range rows {
			*check.target = append(*check.target, row.ID)
		}
	}

	return report, nil
}
