package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/models"
)

const (
	listFlowersQuery = `
		SELECT id, flower_type, name, quantity, wholesale_cost, supplier_id, purchase_date, boxes, unit
		FROM flowers
		ORDER BY id ASC`

	insertFlowerQuery = `
		INSERT INTO flowers
		(flower_type, name, quantity, wholesale_cost, supplier_id, purchase_date, boxes, unit)
		VALUES
		(?, ?, ?, ?, ?, ?, ?, ?)`

	listSuppliersQuery = `SELECT id, name, location FROM suppliers ORDER BY id ASC`

	insertSupplierQuery = `INSERT INTO suppliers (name, location) VALUES (?, ?)`

	listChargesQuery = `
		SELECT c.id, c.charge_type, COALESCE(c.description, ''), c.amount, c.supplier_id,
			c.charge_date, c.unit_of_charge, c.box_count, COALESCE(s.name, '')
		FROM supplier_charges c
		LEFT JOIN suppliers s ON s.id = c.supplier_id
		ORDER BY c.id ASC`

	insertChargeQuery = `
		INSERT INTO supplier_charges
		(charge_type, description, amount, supplier_id, charge_date, unit_of_charge, box_count)
		VALUES
		(?, ?, ?, ?, ?, ?, ?)`

	supplierNameQuery = `SELECT name FROM suppliers WHERE id = ?`
)

// Store keeps the records in MySQL. It implements store.Store.
type Store struct {
	DB *sql.DB
}

// NewStore wraps an open connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

//
// --- Flowers ---
//

func (s *Store) ListFlowers(ctx context.Context) ([]models.FlowerItem, error) {
	rows, err := s.DB.QueryContext(ctx, listFlowersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query flowers: %w", err)
	}
	defer rows.Close()

	flowers := []models.FlowerItem{}
	for rows.Next() {
		var (
			item       models.FlowerItem
			id         int64
			supplierID sql.NullString // Handle NULLable supplier
			date       sql.NullString
			boxes      sql.NullInt64
			unit       string
		)
		if err := rows.Scan(&id, &item.FlowerType, &item.Name, &item.Quantity, &item.WholesaleCost,
			&supplierID, &date, &boxes, &unit); err != nil {
			return nil, fmt.Errorf("failed to scan flower row: %w", err)
		}

		item.ID = strconv.FormatInt(id, 10)
		item.SupplierID = supplierID.String
		item.Date = date.String
		item.Unit = models.UnitOfMeasure(unit)
		if boxes.Valid {
			v := int(boxes.Int64)
			item.Boxes = &v
		}
		flowers = append(flowers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flowers: %w", err)
	}
	return flowers, nil
}

// CreateFlowers inserts the whole batch in one transaction.
func (s *Store) CreateFlowers(ctx context.Context, flowers []models.FlowerInput) ([]models.FlowerItem, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := make([]models.FlowerItem, 0, len(flowers))
	for i, in := range flowers {
		result, err := tx.ExecContext(ctx, insertFlowerQuery,
			in.FlowerType, in.Name, in.Quantity, in.WholesaleCost,
			nullString(in.SupplierID), nullString(in.Date), nullInt(in.Boxes), string(in.Unit))
		if err != nil {
			return nil, fmt.Errorf("failed to insert flower %d of %d: %w", i+1, len(flowers), err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get new flower ID: %w", err)
		}

		created = append(created, models.FlowerItem{
			ID:            strconv.FormatInt(id, 10),
			FlowerType:    in.FlowerType,
			Name:          in.Name,
			Quantity:      in.Quantity,
			WholesaleCost: in.WholesaleCost,
			SupplierID:    in.SupplierID,
			Date:          in.Date,
			Boxes:         in.Boxes,
			Unit:          in.Unit,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}
	return created, nil
}

//
// --- Suppliers ---
//

func (s *Store) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.DB.QueryContext(ctx, listSuppliersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var id int64
		supplier := models.Supplier{AdditionalCharges: []models.AdditionalCharge{}}
		if err := rows.Scan(&id, &supplier.Name, &supplier.Location); err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		supplier.ID = strconv.FormatInt(id, 10)
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Store) CreateSupplier(ctx context.Context, input models.SupplierInput) (models.Supplier, error) {
	if err := input.Validate(); err != nil {
		return models.Supplier{}, err
	}

	result, err := s.DB.ExecContext(ctx, insertSupplierQuery, input.Name, input.Location)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("failed to create supplier: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Supplier{}, fmt.Errorf("failed to get new supplier ID: %w", err)
	}

	return models.Supplier{
		ID:                strconv.FormatInt(id, 10),
		Name:              input.Name,
		Location:          input.Location,
		AdditionalCharges: []models.AdditionalCharge{},
	}, nil
}

//
// --- Supplier charges ---
//

func (s *Store) ListCharges(ctx context.Context) ([]models.SupplierCharge, error) {
	rows, err := s.DB.QueryContext(ctx, listChargesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier charges: %w", err)
	}
	defer rows.Close()

	charges := []models.SupplierCharge{}
	for rows.Next() {
		var (
			charge     models.SupplierCharge
			id         int64
			supplierID sql.NullString
			date       sql.NullString
			unit       string
			boxCount   sql.NullInt64
		)
		if err := rows.Scan(&id, &charge.ChargeType, &charge.Description, &charge.Amount, &supplierID,
			&date, &unit, &boxCount, &charge.SupplierName); err != nil {
			return nil, fmt.Errorf("failed to scan supplier charge row: %w", err)
		}

		charge.ID = strconv.FormatInt(id, 10)
		charge.SupplierID = supplierID.String
		charge.Date = date.String
		charge.UnitOfCharge = models.UnitOfCharge(unit)
		if boxCount.Valid {
			v := int(boxCount.Int64)
			charge.BoxCount = &v
		}
		charges = append(charges, charge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier charges: %w", err)
	}
	return charges, nil
}

func (s *Store) CreateCharge(ctx context.Context, input models.SupplierChargeInput) (models.SupplierCharge, error) {
	if err := input.Validate(); err != nil {
		return models.SupplierCharge{}, err
	}

	result, err := s.DB.ExecContext(ctx, insertChargeQuery,
		input.ChargeType, input.Description, input.Amount, nullString(input.SupplierID),
		nullString(input.Date), string(input.UnitOfCharge), nullInt(input.BoxCount))
	if err != nil {
		return models.SupplierCharge{}, fmt.Errorf("failed to create supplier charge: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.SupplierCharge{}, fmt.Errorf("failed to get new supplier charge ID: %w", err)
	}

	charge := models.SupplierCharge{
		ID:           strconv.FormatInt(id, 10),
		ChargeType:   input.ChargeType,
		Description:  input.Description,
		Amount:       input.Amount,
		SupplierID:   input.SupplierID,
		Date:         input.Date,
		UnitOfCharge: input.UnitOfCharge,
		BoxCount:     input.BoxCount,
	}

	// The supplier name is display-only; a missing supplier is not an error.
	if input.SupplierID != "" {
		var name string
		err := s.DB.QueryRowContext(ctx, supplierNameQuery, input.SupplierID).Scan(&name)
		if err != nil && err != sql.ErrNoRows {
			return models.SupplierCharge{}, fmt.Errorf("failed to look up supplier: %w", err)
		}
		charge.SupplierName = name
	}
	return charge, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
