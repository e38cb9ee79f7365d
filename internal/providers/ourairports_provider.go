package providers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"cargo-charter/charterdesk/internal/constants"
)

// OurAirportsProvider downloads the OurAirports reference CSVs that feed
// the airports_geography table.
type OurAirportsProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewOurAirportsProvider creates a provider against the public OurAirports
// data mirror. The airports file is ~8MB, hence the generous timeout.
func NewOurAirportsProvider() *OurAirportsProvider {
	baseURL := os.Getenv("OURAIRPORTS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://davidmegginson.github.io/ourairports-data"
	}

	return &OurAirportsProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *OurAirportsProvider) GetProviderType() string {
	return "ourairports"
}

// AirportRecord is one parsed row of airports.csv. Numeric fields parse
// leniently; a malformed coordinate zeroes out rather than failing the
// whole download.
type AirportRecord struct {
	Ident        string
	Type         string
	Name         string
	Latitude     float64
	Longitude    float64
	ElevationFt  *int64
	Continent    string
	CountryCode  string
	Municipality string
	IATACode     string
}

// CountryRecord is one parsed row of countries.csv.
type CountryRecord struct {
	Code      string
	Name      string
	Continent string
}

// FetchAirports downloads and parses airports.csv.
func (p *OurAirportsProvider) FetchAirports(ctx context.Context) ([]AirportRecord, error) {
	header, rows, err := p.fetchCSV(ctx, "/airports.csv")
	if err != nil {
		return nil, err
	}

	records := make([]AirportRecord, 0, len(rows))
	for _, row := range rows {
		rec := AirportRecord{
			Ident:        column(row, header, "ident"),
			Type:         column(row, header, "type"),
			Name:         column(row, header, "name"),
			Continent:    column(row, header, "continent"),
			CountryCode:  column(row, header, "iso_country"),
			Municipality: column(row, header, "municipality"),
			IATACode:     column(row, header, "iata_code"),
		}
		rec.Latitude, _ = strconv.ParseFloat(column(row, header, "latitude_deg"), 64)
		rec.Longitude, _ = strconv.ParseFloat(column(row, header, "longitude_deg"), 64)
		if raw := column(row, header, "elevation_ft"); raw != "" {
			if elev, err := strconv.ParseInt(raw, 10, 64); err == nil {
				rec.ElevationFt = &elev
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// FetchCountries downloads and parses countries.csv.
func (p *OurAirportsProvider) FetchCountries(ctx context.Context) ([]CountryRecord, error) {
	header, rows, err := p.fetchCSV(ctx, "/countries.csv")
	if err != nil {
		return nil, err
	}

	records := make([]CountryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, CountryRecord{
			Code:      column(row, header, "code"),
			Name:      column(row, header, "name"),
			Continent: column(row, header, "continent"),
		})
	}

	return records, nil
}

// fetchCSV downloads one CSV file and returns its header index and data
// rows. Columns are resolved by name, not position; OurAirports has
// reordered columns before.
func (p *OurAirportsProvider) fetchCSV(ctx context.Context, endpoint string) (map[string]int, [][]string, error) {
	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, nil, &ProviderError{
			Code:    constants.ErrCodeUpstreamFetch,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, nil, &ProviderError{
			Code:    constants.ErrCodeUpstreamFetch,
			Message: constants.GetErrorMessage(constants.ErrCodeUpstreamFetch),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, nil, &ProviderError{
			Code:    constants.ErrCodeUpstreamFetch,
			Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, endpoint),
			Details: string(bodyBytes),
		}
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, &ProviderError{
			Code:    constants.ErrCodeUpstreamParse,
			Message: fmt.Sprintf("Missing CSV header in %s", endpoint),
			Err:     err,
		}
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[name] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &ProviderError{
				Code:    constants.ErrCodeUpstreamParse,
				Message: fmt.Sprintf("Malformed CSV row in %s", endpoint),
				Err:     err,
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

func column(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ProviderError wraps upstream data source failures with a stable code.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
