package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"alumnihub/portal/internal/models/dtos"
)

// StatsRepository serves the admin dashboard's entity counts with one raw
// aggregate query over the sqlx handle; no ORM involvement.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

const portalStatsQuery = `
	SELECT
		(SELECT COUNT(*) FROM events)                                   AS total_events,
		(SELECT COUNT(*) FROM events WHERE is_active = TRUE)            AS active_events,
		(SELECT COUNT(*) FROM stories)                                  AS total_stories,
		(SELECT COUNT(*) FROM stories WHERE is_published = TRUE)        AS published_stories,
		(SELECT COUNT(*) FROM mentors WHERE status = 'pending')         AS pending_mentors,
		(SELECT COUNT(*) FROM mentors WHERE status = 'approved')        AS approved_mentors,
		(SELECT COUNT(*) FROM posts)                                    AS total_posts,
		(SELECT COUNT(*) FROM internships)                              AS total_internships
`

func (r *StatsRepository) PortalStats(ctx context.Context) (*dtos.PortalStatsDTO, error) {
	var stats dtos.PortalStatsDTO
	if err := r.db.GetContext(ctx, &stats, portalStatsQuery); err != nil {
		return nil, err
	}
	return &stats, nil
}
