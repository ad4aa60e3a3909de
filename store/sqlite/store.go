// Package sqlite is the record-store adapter: it materializes CDR
// batches, equipment inventories, contracts and the price-table
// snapshot into memory before a report run. The engine itself performs
// no I/O; everything it rates comes from one of these batch loads.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/aggregate"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/pricing"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

// Store reads billing data from a sqlite database
type Store struct {
	db *sql.DB
}

// Open opens the database for report loads. All store queries are
// read-only; writes belong to the excluded CRUD layer.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("opening billing database", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Scope restricts a load to one organization and optionally one company.
// Zero values mean unrestricted.
type Scope struct {
	OrganizationID int64
	CompanyID      int64
}

func scopeClause(scope Scope, orgColumn, companyColumn string) (string, []any) {
	clause := " WHERE 1=1"
	args := make([]any, 0, 2)
	if scope.OrganizationID != 0 {
		clause += " AND " + orgColumn + " = ?"
		args = append(args, scope.OrganizationID)
	}
	if scope.CompanyID != 0 {
		clause += " AND " + companyColumn + " = ?"
		args = append(args, scope.CompanyID)
	}
	return clause, args
}

// LoadCallRecords loads the CDR batch for [period.Start, period.End+1d)
func (s *Store) LoadCallRecords(ctx context.Context, period types.Period, scope Scope) ([]types.CallRecord, error) {
	clause, args := scopeClause(scope, "organization_id", "company_id")
	query := `SELECT id, calltype, direction, duration_seconds, company_id, organization_id, price_table_id, started_at
		FROM call_records` + clause + ` AND started_at >= ? AND started_at < ?`
	args = append(args, period.Start.Format(time.RFC3339), period.End.AddDate(0, 0, 1).Format(time.RFC3339))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage("loading call records", err)
	}
	defer rows.Close()

	var records []types.CallRecord
	for rows.Next() {
		var (
			record    types.CallRecord
			calltype  string
			direction string
			startedAt string
		)
		if err := rows.Scan(&record.ID, &calltype, &direction, &record.DurationSeconds,
			&record.CompanyID, &record.OrganizationID, &record.PriceTableID, &startedAt); err != nil {
			return nil, errors.Storage("scanning call record", err)
		}
		record.Calltype = types.Calltype(calltype)
		record.Direction = types.Direction(direction)
		if record.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, errors.Storage("parsing call timestamp", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("reading call records", err)
	}
	return records, nil
}

// LoadEquipment loads the equipment batch for a scope
func (s *Store) LoadEquipment(ctx context.Context, scope Scope) ([]types.Equipment, error) {
	clause, args := scopeClause(scope, "organization_id", "company_id")
	query := `SELECT id, organization_id, company_id, service_kind, contract_id, install_date
		FROM equipment` + clause

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage("loading equipment", err)
	}
	defer rows.Close()

	var units []types.Equipment
	for rows.Next() {
		var (
			unit        types.Equipment
			kind        string
			installDate string
		)
		if err := rows.Scan(&unit.ID, &unit.OrganizationID, &unit.CompanyID, &kind, &unit.ContractID, &installDate); err != nil {
			return nil, errors.Storage("scanning equipment", err)
		}
		unit.ServiceKind = types.ServiceKind(kind)
		if unit.InstallDate, err = time.Parse("2006-01-02", installDate); err != nil {
			return nil, errors.Storage("parsing install date", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("reading equipment", err)
	}
	return units, nil
}

// LoadContracts loads the contracts for a scope, master contracts included
func (s *Store) LoadContracts(ctx context.Context, scope Scope) ([]types.Contract, error) {
	clause, args := scopeClause(Scope{OrganizationID: scope.OrganizationID}, "organization_id", "company_id")
	query := `SELECT id, organization_id, company_id, legacy_service_id, contract_number, item_number,
		description, version, price_table_id, is_subcontract
		FROM contracts` + clause

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage("loading contracts", err)
	}
	defer rows.Close()

	var contracts []types.Contract
	for rows.Next() {
		var (
			contract  types.Contract
			companyID sql.NullInt64
			version   string
		)
		if err := rows.Scan(&contract.ID, &contract.OrganizationID, &companyID, &contract.LegacyServiceID,
			&contract.ContractNumber, &contract.ItemNumber, &contract.Description, &version,
			&contract.PriceTableID, &contract.IsSubcontract); err != nil {
			return nil, errors.Storage("scanning contract", err)
		}
		contract.CompanyID = companyID.Int64
		contract.Version = types.ContractVersion(version)
		contracts = append(contracts, contract)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("reading contracts", err)
	}
	return contracts, nil
}

// LoadPriceSnapshot loads every price row of the referenced tables.
// Inactive rows are loaded too; exactly-one-active enforcement belongs
// to the resolver, not the store.
func (s *Store) LoadPriceSnapshot(ctx context.Context, tableIDs []int64) ([]pricing.PriceRow, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	query := `SELECT table_id, calltype, service_kind, value, active FROM prices WHERE table_id IN (`
	args := make([]any, 0, len(tableIDs))
	for i, id := range tableIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage("loading price snapshot", err)
	}
	defer rows.Close()

	var prices []pricing.PriceRow
	for rows.Next() {
		var (
			row      pricing.PriceRow
			calltype sql.NullString
			kind     sql.NullString
			value    string
		)
		if err := rows.Scan(&row.TableID, &calltype, &kind, &value, &row.Active); err != nil {
			return nil, errors.Storage("scanning price row", err)
		}
		if calltype.Valid && calltype.String != "" {
			row.Classification = types.CallClassification(types.Calltype(calltype.String))
		} else {
			row.Classification = types.ServiceClassification(types.ServiceKind(kind.String))
		}
		if row.Value, err = decimal.NewFromString(value); err != nil {
			return nil, errors.Storage("parsing price value", err)
		}
		prices = append(prices, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("reading price snapshot", err)
	}
	return prices, nil
}

// LoadScopeNames loads organization and company display names
func (s *Store) LoadScopeNames(ctx context.Context) (aggregate.ScopeNames, error) {
	names := aggregate.ScopeNames{
		Organizations: make(map[int64]string),
		Companies:     make(map[int64]string),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM organizations`)
	if err != nil {
		return names, errors.Storage("loading organization names", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return names, errors.Storage("scanning organization name", err)
		}
		names.Organizations[id] = name
	}
	if err := rows.Err(); err != nil {
		return names, errors.Storage("reading organization names", err)
	}

	companyRows, err := s.db.QueryContext(ctx, `SELECT id, name FROM companies`)
	if err != nil {
		return names, errors.Storage("loading company names", err)
	}
	defer companyRows.Close()
	for companyRows.Next() {
		var (
			id   int64
			name string
		)
		if err := companyRows.Scan(&id, &name); err != nil {
			return names, errors.Storage("scanning company name", err)
		}
		names.Companies[id] = name
	}
	if err := companyRows.Err(); err != nil {
		return names, errors.Storage("reading company names", err)
	}

	return names, nil
}
