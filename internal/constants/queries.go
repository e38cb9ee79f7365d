package constants

const (
	SearchOperatorCandidates = `
	SELECT operator,
	       COALESCE(operator_iata_code, '') AS operator_iata_code,
	       COALESCE(operator_icao_code, '') AS operator_icao_code,
	       COUNT(*) AS aircraft_count
	FROM aircraft
	WHERE operator IS NOT NULL
	  AND (operator ILIKE '%' || $1 || '%'
	       OR operator_iata_code ILIKE '%' || $1 || '%'
	       OR operator_icao_code ILIKE '%' || $1 || '%')
	GROUP BY operator, operator_iata_code, operator_icao_code
	`

	GetOperatorAircraft = `
	SELECT registration, type, COALESCE(details, '') AS details
	FROM aircraft
	WHERE operator = $1
	ORDER BY type, registration
	`

	GetFleetCountsByOperators = `
	SELECT operator,
	       COALESCE(operator_iata_code, '') AS operator_iata_code,
	       COALESCE(operator_icao_code, '') AS operator_icao_code,
	       type,
	       COALESCE(details, '') AS details,
	       COUNT(*) AS aircraft_count
	FROM aircraft
	WHERE operator = ANY($1)
	GROUP BY operator, operator_iata_code, operator_icao_code, type, details
	`

	GetFleetReviewRows = `
	SELECT type,
	       COALESCE(details, '') AS details,
	       COUNT(*) AS aircraft_count
	FROM aircraft
	WHERE operator IS NOT NULL
	  AND (type ILIKE '%' || $1 || '%' OR details ILIKE '%' || $1 || '%')
	GROUP BY type, details
	ORDER BY aircraft_count DESC, type
	`

	GetOperatorRouteSummary = `
	SELECT m.origin_code,
	       m.destination_code,
	       COUNT(*) AS flights,
	       COUNT(DISTINCT m.registration) AS aircraft_used
	FROM movements m
	JOIN aircraft a ON a.registration = m.registration
	WHERE a.operator = $1
	  AND m.scheduled_departure >= $2
	  AND m.scheduled_departure < $3
	GROUP BY m.origin_code, m.destination_code
	ORDER BY flights DESC, m.origin_code, m.destination_code
	`

	GetDestinationCriteriaRows = `
	SELECT a.operator,
	       COALESCE(a.operator_iata_code, '') AS operator_iata_code,
	       COALESCE(a.operator_icao_code, '') AS operator_icao_code,
	       m.destination_code,
	       a.type,
	       COALESCE(a.details, '') AS details,
	       COALESCE(g.country_name, '') AS country_name,
	       COALESCE(g.continent, '') AS continent,
	       COUNT(*) AS flights
	FROM movements m
	JOIN aircraft a ON a.registration = m.registration
	LEFT JOIN airports_geography g ON g.iata_code = m.destination_code
	WHERE a.operator IS NOT NULL
	  AND m.scheduled_departure >= $1
	  AND m.scheduled_departure < $2
	  AND (m.destination_code = ANY($3)
	       OR g.country_name ILIKE ANY($4)
	       OR g.continent = ANY($5))
	  AND (cardinality($6::text[]) = 0 OR a.type ILIKE ANY($6))
	GROUP BY a.operator, a.operator_iata_code, a.operator_icao_code,
	         m.destination_code, a.type, a.details, g.country_name, g.continent
	`

	GetOriginOperatorRows = `
	SELECT a.operator,
	       COALESCE(a.operator_iata_code, '') AS operator_iata_code,
	       COALESCE(a.operator_icao_code, '') AS operator_icao_code,
	       m.destination_code,
	       a.type,
	       COALESCE(a.details, '') AS details,
	       COALESCE(g.country_name, '') AS country_name,
	       COALESCE(g.continent, '') AS continent,
	       COUNT(*) AS flights
	FROM movements m
	JOIN aircraft a ON a.registration = m.registration
	LEFT JOIN airports_geography g ON g.iata_code = m.destination_code
	WHERE a.operator IS NOT NULL
	  AND m.origin_code = $1
	  AND m.scheduled_departure >= $2
	  AND m.scheduled_departure < $3
	GROUP BY a.operator, a.operator_iata_code, a.operator_icao_code,
	         m.destination_code, a.type, a.details, g.country_name, g.continent
	`

	GetRouteDetails = `
	SELECT a.operator,
	       COALESCE(a.operator_iata_code, '') AS operator_iata_code,
	       COALESCE(a.operator_icao_code, '') AS operator_icao_code,
	       a.type,
	       COALESCE(a.details, '') AS details,
	       COUNT(*) AS flights,
	       MIN(m.registration) AS sample_registration
	FROM movements m
	JOIN aircraft a ON a.registration = m.registration
	WHERE a.operator IS NOT NULL
	  AND m.origin_code = $1
	  AND m.destination_code = $2
	  AND m.scheduled_departure >= $3
	  AND m.scheduled_departure < $4
	GROUP BY a.operator, a.operator_iata_code, a.operator_icao_code, a.type, a.details
	ORDER BY flights DESC, a.operator
	`

	GetOperatorDestinationRows = `
	SELECT a.operator,
	       COALESCE(a.operator_iata_code, '') AS operator_iata_code,
	       COALESCE(a.operator_icao_code, '') AS operator_icao_code,
	       m.destination_code,
	       a.type,
	       COALESCE(a.details, '') AS details,
	       COALESCE(g.country_name, '') AS country_name,
	       COALESCE(g.continent, '') AS continent,
	       COUNT(*) AS flights
	FROM movements m
	JOIN aircraft a ON a.registration = m.registration
	LEFT JOIN airports_geography g ON g.iata_code = m.destination_code
	WHERE a.operator = $1
	  AND m.scheduled_departure >= $2
	  AND m.scheduled_departure < $3
	GROUP BY a.operator, a.operator_iata_code, a.operator_icao_code,
	         m.destination_code, a.type, a.details, g.country_name, g.continent
	`

	GetOperatorOrigins = `
	SELECT m.origin_code,
	       COALESCE(g.continent, '') AS continent,
	       COALESCE(g.country_name, '') AS country_name,
	       COUNT(*) AS flights
	FROM movements m
	JOIN aircraft a ON a.registration = m.registration
	LEFT JOIN airports_geography g ON g.iata_code = m.origin_code
	WHERE a.operator = $1
	  AND m.scheduled_departure >= $2
	  AND m.scheduled_departure < $3
	GROUP BY m.origin_code, g.continent, g.country_name
	ORDER BY flights DESC, m.origin_code
	`

	GetMovementDataWindow = `
	SELECT MIN(scheduled_departure) AS window_start,
	       MAX(scheduled_departure) AS window_end,
	       COUNT(*) AS movement_count
	FROM movements
	`

	GetStatusByApiKey = `
	SELECT id, status, is_admin, COALESCE(label, '') AS label
	FROM api_keys
	WHERE id = $1
	`
)
