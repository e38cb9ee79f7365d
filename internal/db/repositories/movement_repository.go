package repositories

import (
	"context"
	"time"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type MovementRepository struct {
	db *sqlx.DB
}

func NewMovementRepository(db *sqlx.DB) *MovementRepository {
	return &MovementRepository{db}
}

func (r *MovementRepository) GetRouteSummary(ctx context.Context, operator string, from, to time.Time) ([]entities.RouteSummaryRow, error) {
	var rows []entities.RouteSummaryRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetOperatorRouteSummary, operator, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDestinationCriteriaRows runs the destination-criteria join. The
// three geographic buckets are ORed; the type filter, when present,
// narrows on top. Country patterns arrive pre-wrapped in wildcards from
// the token classifier; type filters are wrapped here.
func (r *MovementRepository) GetDestinationCriteriaRows(
	ctx context.Context,
	from, to time.Time,
	airportCodes, countryPatterns, continentCodes, typeFilters []string,
) ([]entities.MovementCriteriaRow, error) {
	typePatterns := make([]string, 0, len(typeFilters))
	for _, t := range typeFilters {
		if t == "" {
			continue
		}
		typePatterns = append(typePatterns, "%"+t+"%")
	}

	var rows []entities.MovementCriteriaRow
	err := r.db.SelectContext(ctx, &rows, constants.GetDestinationCriteriaRows,
		from, to,
		pq.Array(airportCodes),
		pq.Array(countryPatterns),
		pq.Array(continentCodes),
		pq.Array(typePatterns),
	)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MovementRepository) GetOriginOperatorRows(ctx context.Context, origin string, from, to time.Time) ([]entities.MovementCriteriaRow, error) {
	var rows []entities.MovementCriteriaRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetOriginOperatorRows, origin, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MovementRepository) GetRouteDetails(ctx context.Context, origin, destination string, from, to time.Time) ([]entities.RouteDetailRow, error) {
	var rows []entities.RouteDetailRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetRouteDetails, origin, destination, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MovementRepository) GetOperatorDestinationRows(ctx context.Context, operator string, from, to time.Time) ([]entities.MovementCriteriaRow, error) {
	var rows []entities.MovementCriteriaRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetOperatorDestinationRows, operator, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MovementRepository) GetOperatorOrigins(ctx context.Context, operator string, from, to time.Time) ([]entities.OriginSummaryRow, error) {
	var rows []entities.OriginSummaryRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetOperatorOrigins, operator, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MovementRepository) GetDataWindow(ctx context.Context) (*entities.MovementWindowRow, error) {
	var row entities.MovementWindowRow

	err := r.db.QueryRowxContext(ctx, constants.GetMovementDataWindow).StructScan(&row)

	if err != nil {
		return nil, err
	}

	return &row, nil
}
