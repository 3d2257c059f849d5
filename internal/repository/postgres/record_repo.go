package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"darf/internal/domain"
	"darf/internal/port"
)

const (
	uniqueViolation          = "23505"
	constraintDocumentNumber = "uq_fiscal_records_document_number"
	constraintInvoice        = "uq_fiscal_records_invoice"
)

const recordColumns = `r.id, r.org_unit, r.document_number, r.payer_tax_id, r.invoice_number,
	r.invoice_date, r.payment_date, r.status, r.income_nature, r.created_at, r.updated_at,
	w.fiscal_code, w.gross_amount, w.rate_ir, w.rate_csll, w.rate_cofins, w.rate_pis,
	w.withheld_ir, w.withheld_csll, w.withheld_cofins, w.withheld_pis, w.net_amount`

const recordFrom = `FROM fiscal_records r JOIN withholding_details w ON w.record_id = r.id`

type recordRow struct {
	ID             uuid.UUID           `db:"id"`
	OrgUnit        domain.OrgUnit      `db:"org_unit"`
	DocumentNumber string              `db:"document_number"`
	PayerTaxID     string              `db:"payer_tax_id"`
	InvoiceNumber  int                 `db:"invoice_number"`
	InvoiceDate    time.Time           `db:"invoice_date"`
	PaymentDate    *time.Time          `db:"payment_date"`
	Status         domain.RecordStatus `db:"status"`
	IncomeNature   string              `db:"income_nature"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`
	FiscalCode     string              `db:"fiscal_code"`
	GrossAmount    decimal.Decimal     `db:"gross_amount"`
	RateIR         decimal.Decimal     `db:"rate_ir"`
	RateCSLL       decimal.Decimal     `db:"rate_csll"`
	RateCOFINS     decimal.Decimal     `db:"rate_cofins"`
	RatePIS        decimal.Decimal     `db:"rate_pis"`
	WithheldIR     decimal.Decimal     `db:"withheld_ir"`
	WithheldCSLL   decimal.Decimal     `db:"withheld_csll"`
	WithheldCOFINS decimal.Decimal     `db:"withheld_cofins"`
	WithheldPIS    decimal.Decimal     `db:"withheld_pis"`
	NetAmount      decimal.Decimal     `db:"net_amount"`
}

func (row *recordRow) toDomain() domain.FiscalRecord {
	rec := domain.FiscalRecord{
		ID:             row.ID,
		OrgUnit:        row.OrgUnit,
		DocumentNumber: row.DocumentNumber,
		PayerTaxID:     row.PayerTaxID,
		InvoiceNumber:  row.InvoiceNumber,
		InvoiceDate:    row.InvoiceDate.UTC(),
		Status:         row.Status,
		IncomeNature:   row.IncomeNature,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		Withholding: domain.WithholdingDetail{
			FiscalCode:     row.FiscalCode,
			GrossAmount:    row.GrossAmount,
			RateIR:         row.RateIR,
			RateCSLL:       row.RateCSLL,
			RateCOFINS:     row.RateCOFINS,
			RatePIS:        row.RatePIS,
			WithheldIR:     row.WithheldIR,
			WithheldCSLL:   row.WithheldCSLL,
			WithheldCOFINS: row.WithheldCOFINS,
			WithheldPIS:    row.WithheldPIS,
			NetAmount:      row.NetAmount,
		},
	}
	if row.PaymentDate != nil {
		p := row.PaymentDate.UTC()
		rec.PaymentDate = &p
	}
	return rec
}

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordStore.
func NewRecordRepo(db *sqlx.DB) port.RecordStore {
	return &recordRepo{db: db}
}

// buildWhereClause constructs the WHERE clause for a record filter.
// It returns the clause string (starting with "WHERE") and the positional arguments.
func buildWhereClause(f *domain.RecordFilter) (clause string, args []interface{}) {
	clause = "WHERE TRUE"
	argN := 1

	add := func(cond string, v interface{}) {
		clause += fmt.Sprintf(" AND "+cond, argN)
		args = append(args, v)
		argN++
	}

	if f.PayerTaxID != nil {
		add("r.payer_tax_id = $%d", *f.PayerTaxID)
	}
	if f.Status != nil {
		add("r.status = $%d", string(*f.Status))
	}
	if f.OrgUnit != nil {
		add("r.org_unit = $%d", string(*f.OrgUnit))
	}
	if f.DocumentNumber != nil {
		add("upper(r.document_number) = $%d", domain.NormalizeDocumentNumber(*f.DocumentNumber))
	}
	if f.DocumentNumberPrefix != nil {
		add(`upper(r.document_number) LIKE $%d ESCAPE '\'`, escapeLike(domain.NormalizeDocumentNumber(*f.DocumentNumberPrefix))+"%")
	}
	if f.InvoiceNumber != nil {
		add("r.invoice_number = $%d", *f.InvoiceNumber)
	}
	if f.FiscalCode != nil {
		add("w.fiscal_code = $%d", *f.FiscalCode)
	}
	if f.IncomeNature != nil {
		add("r.income_nature = $%d", *f.IncomeNature)
	}
	if f.InvoiceYear != nil {
		add("EXTRACT(YEAR FROM r.invoice_date) = $%d", *f.InvoiceYear)
	}
	if f.InvoiceMonth != nil {
		add("EXTRACT(MONTH FROM r.invoice_date) = $%d", *f.InvoiceMonth)
	}
	if f.PaymentYear != nil || f.PaymentMonth != nil {
		clause += " AND r.payment_date IS NOT NULL"
	}
	if f.PaymentYear != nil {
		add("EXTRACT(YEAR FROM r.payment_date) = $%d", *f.PaymentYear)
	}
	if f.PaymentMonth != nil {
		add("EXTRACT(MONTH FROM r.payment_date) = $%d", *f.PaymentMonth)
	}

	return clause, args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderBy(order domain.SortOrder) string {
	if order == domain.SortDocumentNumberAsc {
		return "ORDER BY upper(r.document_number) ASC, r.org_unit ASC"
	}
	return "ORDER BY r.created_at DESC, r.id ASC"
}

// pageClause appends LIMIT/OFFSET placeholders. A zero limit means no limit.
func pageClause(page domain.PageRequest, args []interface{}) (string, []interface{}) {
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	n := len(args) + 1
	if page.Limit <= 0 {
		return fmt.Sprintf(" OFFSET $%d", n), append(args, offset)
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1), append(args, page.Limit, offset)
}

func (r *recordRepo) ExistsInvoiceTriple(ctx context.Context, payerTaxID string, invoiceNumber int, orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fiscal_records
		WHERE payer_tax_id = $1 AND invoice_number = $2 AND org_unit = $3`
	args := []interface{}{payerTaxID, invoiceNumber, string(orgUnit)}
	if excludeID != nil {
		query += " AND id <> $4"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("recordRepo.ExistsInvoiceTriple: %w", err)
	}
	return exists, nil
}

func (r *recordRepo) ExistsDocumentNumber(ctx context.Context, documentNumber string, orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fiscal_records
		WHERE org_unit = $1 AND upper(document_number) = $2`
	args := []interface{}{string(orgUnit), domain.NormalizeDocumentNumber(documentNumber)}
	if excludeID != nil {
		query += " AND id <> $3"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("recordRepo.ExistsDocumentNumber: %w", err)
	}
	return exists, nil
}

func (r *recordRepo) FindAllByDocumentNumber(ctx context.Context, documentNumber string) ([]domain.FiscalRecord, error) {
	var rows []recordRow
	query := "SELECT " + recordColumns + " " + recordFrom +
		" WHERE upper(r.document_number) = $1 ORDER BY r.org_unit"
	if err := r.db.SelectContext(ctx, &rows, query, domain.NormalizeDocumentNumber(documentNumber)); err != nil {
		return nil, fmt.Errorf("recordRepo.FindAllByDocumentNumber: %w", err)
	}
	return toRecords(rows), nil
}

func (r *recordRepo) FindPage(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) (*domain.RecordPage, error) {
	whereClause, args := buildWhereClause(&filter)

	var total int
	countQuery := "SELECT COUNT(*) " + recordFrom + " " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("recordRepo.FindPage count: %w", err)
	}

	limitClause, pageArgs := pageClause(page, args)
	query := "SELECT " + recordColumns + " " + recordFrom + " " + whereClause + " " + orderBy(page.Sort) + limitClause

	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query, pageArgs...); err != nil {
		return nil, fmt.Errorf("recordRepo.FindPage: %w", err)
	}
	return &domain.RecordPage{Records: toRecords(rows), Total: total, Offset: page.Offset, Limit: page.Limit}, nil
}

func (r *recordRepo) FindAggregates(ctx context.Context, filter domain.RecordFilter) (*domain.Totals, error) {
	whereClause, args := buildWhereClause(&filter)
	query := `SELECT COUNT(*) AS count,
			COALESCE(SUM(w.withheld_ir + w.withheld_csll + w.withheld_cofins + w.withheld_pis), 0) AS total_withheld,
			COALESCE(SUM(w.gross_amount), 0) AS total_gross,
			COALESCE(SUM(w.net_amount), 0) AS total_net
		` + recordFrom + " " + whereClause

	var totals domain.Totals
	if err := r.db.GetContext(ctx, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("recordRepo.FindAggregates: %w", err)
	}
	return &totals, nil
}

func (r *recordRepo) FindDistinctPayers(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) ([]string, int, error) {
	whereClause, args := buildWhereClause(&filter)

	var total int
	countQuery := "SELECT COUNT(DISTINCT r.payer_tax_id) " + recordFrom + " " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("recordRepo.FindDistinctPayers count: %w", err)
	}

	limitClause, pageArgs := pageClause(page, args)
	query := "SELECT DISTINCT r.payer_tax_id " + recordFrom + " " + whereClause + " ORDER BY r.payer_tax_id" + limitClause

	var payers []string
	if err := r.db.SelectContext(ctx, &payers, query, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("recordRepo.FindDistinctPayers: %w", err)
	}
	return payers, total, nil
}

func (r *recordRepo) Save(ctx context.Context, rec *domain.FiscalRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("recordRepo.Save begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		err = insertRecord(ctx, tx, rec, now)
	} else {
		err = updateRecord(ctx, tx, rec, now)
	}
	if err != nil {
		return mapWriteError(err, rec)
	}

	if err := tx.Commit(); err != nil {
		return mapWriteError(err, rec)
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sqlx.Tx, rec *domain.FiscalRecord, now time.Time) error {
	id := uuid.New()
	_, err := tx.ExecContext(ctx, `INSERT INTO fiscal_records (id, org_unit, document_number, payer_tax_id,
		invoice_number, invoice_date, payment_date, status, income_nature, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, string(rec.OrgUnit), rec.DocumentNumber, rec.PayerTaxID, rec.InvoiceNumber,
		rec.InvoiceDate, rec.PaymentDate, string(rec.Status), rec.IncomeNature, now, now)
	if err != nil {
		return err
	}
	if err := writeWithholding(ctx, tx, id, &rec.Withholding, true); err != nil {
		return err
	}
	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

func updateRecord(ctx context.Context, tx *sqlx.Tx, rec *domain.FiscalRecord, now time.Time) error {
	var createdAt time.Time
	err := tx.GetContext(ctx, &createdAt, `UPDATE fiscal_records SET org_unit = $1, document_number = $2,
		payer_tax_id = $3, invoice_number = $4, invoice_date = $5, payment_date = $6, status = $7,
		income_nature = $8, updated_at = $9
		WHERE id = $10 RETURNING created_at`,
		string(rec.OrgUnit), rec.DocumentNumber, rec.PayerTaxID, rec.InvoiceNumber,
		rec.InvoiceDate, rec.PaymentDate, string(rec.Status), rec.IncomeNature, now, rec.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.RecordNotFoundError{ID: rec.ID}
		}
		return err
	}
	if err := writeWithholding(ctx, tx, rec.ID, &rec.Withholding, false); err != nil {
		return err
	}
	rec.CreatedAt = createdAt
	rec.UpdatedAt = now
	return nil
}

func writeWithholding(ctx context.Context, tx *sqlx.Tx, recordID uuid.UUID, w *domain.WithholdingDetail, insert bool) error {
	query := `UPDATE withholding_details SET fiscal_code = $2, gross_amount = $3, rate_ir = $4,
		rate_csll = $5, rate_cofins = $6, rate_pis = $7, withheld_ir = $8, withheld_csll = $9,
		withheld_cofins = $10, withheld_pis = $11, net_amount = $12
		WHERE record_id = $1`
	if insert {
		query = `INSERT INTO withholding_details (record_id, fiscal_code, gross_amount, rate_ir, rate_csll,
			rate_cofins, rate_pis, withheld_ir, withheld_csll, withheld_cofins, withheld_pis, net_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	}
	_, err := tx.ExecContext(ctx, query, recordID, w.FiscalCode, w.GrossAmount,
		w.RateIR, w.RateCSLL, w.RateCOFINS, w.RatePIS,
		w.WithheldIR, w.WithheldCSLL, w.WithheldCOFINS, w.WithheldPIS, w.NetAmount)
	return err
}

// mapWriteError turns unique-index violations into the conflict errors the
// validator would have produced.
func mapWriteError(err error, rec *domain.FiscalRecord) error {
	var notFound *domain.RecordNotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case constraintDocumentNumber:
			return &domain.DuplicateDocumentNumberError{
				DocumentNumber: domain.NormalizeDocumentNumber(rec.DocumentNumber),
				OrgUnit:        rec.OrgUnit,
			}
		case constraintInvoice:
			return &domain.DuplicateInvoiceError{
				PayerTaxID:    rec.PayerTaxID,
				InvoiceNumber: rec.InvoiceNumber,
				OrgUnit:       rec.OrgUnit,
			}
		}
	}
	return fmt.Errorf("recordRepo.Save: %w", err)
}

func (r *recordRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM fiscal_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("recordRepo.DeleteByID: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return &domain.RecordNotFoundError{ID: id}
	}
	return nil
}

func (r *recordRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, "SELECT "+recordColumns+" "+recordFrom+" WHERE r.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.RecordNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("recordRepo.FindByID: %w", err)
	}
	rec := row.toDomain()
	return &rec, nil
}

func toRecords(rows []recordRow) []domain.FiscalRecord {
	out := make([]domain.FiscalRecord, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}
