package baserow

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/01moynul/flower-pricing-golang/internal/models"
)

//
// --- Flowers ---
//

type flowerRow struct {
	ID         int64   `json:"id"`
	FlowerType text    `json:"Flower Type"`
	Name       text    `json:"Flower Name"`
	Units      number  `json:"Units"`
	Suppliers  []link  `json:"Suppliers"`
	Date       *string `json:"Date"`
	Cost       number  `json:"Cost"`
	Boxes      number  `json:"Boxes"`
	Unit       text    `json:"Unit"`
}

func (r flowerRow) toModel() models.FlowerItem {
	item := models.FlowerItem{
		ID:            strconv.FormatInt(r.ID, 10),
		FlowerType:    string(r.FlowerType),
		Name:          string(r.Name),
		Quantity:      r.Units.nonNegative(r.ID, "Units"),
		WholesaleCost: r.Cost.nonNegative(r.ID, "Cost"),
		Boxes:         r.Boxes.positiveInt(),
		Unit:          models.UnitOfMeasure(r.Unit),
	}
	if supplier, ok := firstLink(r.Suppliers); ok {
		item.SupplierID = strconv.FormatInt(supplier.ID, 10)
	}
	if r.Date != nil {
		item.Date = *r.Date
	}
	return item
}

// ListFlowers returns every row of the flowers table.
func (c *Client) ListFlowers(ctx context.Context) ([]models.FlowerItem, error) {
	rows, err := listRows[flowerRow](ctx, c, c.tables.FlowersTableID)
	if err != nil {
		return nil, err
	}

	flowers := make([]models.FlowerItem, 0, len(rows))
	for _, row := range rows {
		flowers = append(flowers, row.toModel())
	}
	return flowers, nil
}

// CreateFlowers creates the rows one at a time, in order.
func (c *Client) CreateFlowers(ctx context.Context, flowers []models.FlowerInput) ([]models.FlowerItem, error) {
	created := make([]models.FlowerItem, 0, len(flowers))
	for i, flower := range flowers {
		payload := map[string]any{
			"Flower Type": flower.FlowerType,
			"Flower Name": flower.Name,
			"Suppliers":   linkIDs(flower.SupplierID),
			"Date":        flower.Date,
			"Cost":        flower.WholesaleCost,
			"Units":       flower.Quantity,
			"Boxes":       flower.Boxes,
		}
		if flower.Unit != "" {
			payload["Unit"] = string(flower.Unit)
		}

		var row flowerRow
		if err := c.do(ctx, http.MethodPost, tablePath(c.tables.FlowersTableID), payload, &row); err != nil {
			return nil, fmt.Errorf("failed to create flower %d of %d: %w", i+1, len(flowers), err)
		}
		created = append(created, row.toModel())
	}
	return created, nil
}

//
// --- Suppliers ---
//

type supplierRow struct {
	ID       int64 `json:"id"`
	Supplier text  `json:"Supplier"`
	Location text  `json:"Location"`
}

func (r supplierRow) toModel() models.Supplier {
	return models.Supplier{
		ID:                strconv.FormatInt(r.ID, 10),
		Name:              string(r.Supplier),
		Location:          string(r.Location),
		AdditionalCharges: []models.AdditionalCharge{},
	}
}

// ListSuppliers returns every row of the suppliers table.
func (c *Client) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := listRows[supplierRow](ctx, c, c.tables.SuppliersTableID)
	if err != nil {
		return nil, err
	}

	suppliers := make([]models.Supplier, 0, len(rows))
	for _, row := range rows {
		suppliers = append(suppliers, row.toModel())
	}
	return suppliers, nil
}

// CreateSupplier creates one supplier row.
func (c *Client) CreateSupplier(ctx context.Context, input models.SupplierInput) (models.Supplier, error) {
	if err := input.Validate(); err != nil {
		return models.Supplier{}, err
	}

	payload := map[string]any{
		"Supplier": input.Name,
		"Location": input.Location,
	}

	var row supplierRow
	if err := c.do(ctx, http.MethodPost, tablePath(c.tables.SuppliersTableID), payload, &row); err != nil {
		return models.Supplier{}, err
	}
	return row.toModel(), nil
}

//
// --- Supplier charges ---
//

type chargeRow struct {
	ID           int64   `json:"id"`
	ChargeType   text    `json:"Charge Type"`
	Description  text    `json:"Charge Description"`
	Supplier     []link  `json:"Supplier"`
	Amount       number  `json:"Charge Amount"`
	Date         *string `json:"Date"`
	UnitOfCharge text    `json:"Unit of Charge"`
	BoxCount     number  `json:"Box Count"`
}

func (r chargeRow) toModel() models.SupplierCharge {
	charge := models.SupplierCharge{
		ID:           strconv.FormatInt(r.ID, 10),
		ChargeType:   string(r.ChargeType),
		Description:  string(r.Description),
		Amount:       r.Amount.nonNegative(r.ID, "Charge Amount"),
		UnitOfCharge: models.ChargePerBox,
	}
	// Anything other than an explicit "Per Shipment" is counted per box.
	if models.UnitOfCharge(r.UnitOfCharge) == models.ChargePerShipment {
		charge.UnitOfCharge = models.ChargePerShipment
	} else {
		charge.BoxCount = r.BoxCount.positiveInt()
	}
	if supplier, ok := firstLink(r.Supplier); ok {
		charge.SupplierID = strconv.FormatInt(supplier.ID, 10)
		charge.SupplierName = supplier.Value
	}
	if r.Date != nil {
		charge.Date = *r.Date
	}
	return charge
}

// ListCharges returns every row of the supplier charges table.
func (c *Client) ListCharges(ctx context.Context) ([]models.SupplierCharge, error) {
	rows, err := listRows[chargeRow](ctx, c, c.tables.ChargesTableID)
	if err != nil {
		return nil, err
	}

	charges := make([]models.SupplierCharge, 0, len(rows))
	for _, row := range rows {
		charges = append(charges, row.toModel())
	}
	return charges, nil
}

// CreateCharge creates one supplier charge row.
func (c *Client) CreateCharge(ctx context.Context, input models.SupplierChargeInput) (models.SupplierCharge, error) {
	if err := input.Validate(); err != nil {
		return models.SupplierCharge{}, err
	}

	payload := map[string]any{
		"Charge Type":        input.ChargeType,
		"Charge Description": input.Description,
		"Charge Amount":      input.Amount,
		"Unit of Charge":     string(input.UnitOfCharge),
		"Supplier":           linkIDs(input.SupplierID),
		"Date":               input.Date,
		"Box Count":          input.BoxCount,
	}

	var row chargeRow
	if err := c.do(ctx, http.MethodPost, tablePath(c.tables.ChargesTableID), payload, &row); err != nil {
		return models.SupplierCharge{}, err
	}
	return row.toModel(), nil
}
