package repositories

import (
	"context"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type OperatorRepository struct {
	db *sqlx.DB
}

func NewOperatorRepository(db *sqlx.DB) *OperatorRepository {
	return &OperatorRepository{db}
}

// SearchCandidates pulls every operator whose name or codes contain the
// query, with fleet counts. Ranking happens in internal/match.
func (r *OperatorRepository) SearchCandidates(ctx context.Context, query string) ([]entities.OperatorCandidateRow, error) {
	var rows []entities.OperatorCandidateRow
	if err := r.db.SelectContext(ctx, &rows, constants.SearchOperatorCandidates, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OperatorRepository) GetAircraft(ctx context.Context, operator string) ([]entities.AircraftRow, error) {
	var rows []entities.AircraftRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetOperatorAircraft, operator); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OperatorRepository) GetFleetCounts(ctx context.Context, operators []string) ([]entities.FleetCountRow, error) {
	var rows []entities.FleetCountRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetFleetCountsByOperators, pq.Array(operators)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OperatorRepository) GetFleetReviewRows(ctx context.Context, letter string) ([]entities.FleetReviewRow, error) {
	var rows []entities.FleetReviewRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetFleetReviewRows, letter); err != nil {
		return nil, err
	}
	return rows, nil
}
