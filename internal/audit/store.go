// Package audit persists a trail of completed calculations. Estate
// snapshots are sensitive personal financial data, so the full input is
// fernet-encrypted at rest; the summary columns stay queryable in the clear.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/apperrors"
)

// Record is one audited calculation.
type Record struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	TaxYear     string          `json:"taxYear"`
	DeathDate   time.Time       `json:"deathDate"`
	NetEstate   decimal.Decimal `json:"netEstate"`
	TotalTaxDue decimal.Decimal `json:"totalTaxDue"`
	Snapshot    json.RawMessage `json:"snapshot"`
}

// Store writes and reads audit rows.
type Store struct {
	db  *sql.DB
	key *fernet.Key
}

// NewStore creates a Store using the base64-encoded fernet key.
func NewStore(db *sql.DB, encodedKey string) (*Store, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAuditKeyInvalid, err)
	}
	return &Store{db: db, key: key}, nil
}

// Save records a completed calculation. The snapshot is any serializable
// representation of the calculation input.
func (s *Store) Save(id, taxYear string, deathDate time.Time, netEstate, totalTaxDue decimal.Decimal, snapshot any) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize audit snapshot: %w", err)
	}

	sealed, err := fernet.EncryptAndSign(payload, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt audit snapshot: %w", err)
	}

	query := `
		INSERT INTO calculation_audit (id, created_at, tax_year, death_date, net_estate, total_tax_due, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		id,
		time.Now().UTC().Format(time.RFC3339),
		taxYear,
		deathDate.Format("2006-01-02"),
		netEstate.String(),
		totalTaxDue.String(),
		sealed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	return nil
}

// Get retrieves and decrypts one audit record by calculation ID.
func (s *Store) Get(id string) (Record, error) {
	query := `
		SELECT id, created_at, tax_year, death_date, net_estate, total_tax_due, snapshot
		FROM calculation_audit
		WHERE id = ?`

	var rec Record
	var sealed []byte

	err := s.db.QueryRow(query, id).Scan(
		&rec.ID, &rec.CreatedAt, &rec.TaxYear, &rec.DeathDate,
		&rec.NetEstate, &rec.TotalTaxDue, &sealed,
	)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("%q: %w", id, apperrors.ErrAuditRecordNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to query audit record: %w", err)
	}

	payload := fernet.VerifyAndDecrypt(sealed, 0, []*fernet.Key{s.key})
	if payload == nil {
		return Record{}, fmt.Errorf("audit record %q: snapshot failed verification: %w",
			id, apperrors.ErrAuditKeyInvalid)
	}
	rec.Snapshot = payload

	return rec, nil
}
