package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/01moynul/flower-pricing-golang/internal/planner"
	"github.com/01moynul/flower-pricing-golang/internal/pricing"
	"github.com/01moynul/flower-pricing-golang/internal/store"
	"github.com/gin-gonic/gin"
)

type fakeAssistant struct {
	question string
	sections int
	err      error
}

func (f *fakeAssistant) Ask(_ context.Context, question string, sheet pricing.PriceSheet) (string, int, error) {
	f.question = question
	f.sections = len(sheet.Sections)
	if f.err != nil {
		return "", 0, f.err
	}
	return "Roses retail at $9.10 a stem.", 42, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()

	h := &Handlers{Planner: planner.New(store.NewMemory(), pricing.DefaultMarkupPercent)}

	r := gin.New()
	r.GET("/flowers", h.GetFlowers)
	r.POST("/flowers", h.CreateFlowers)
	r.GET("/suppliers", h.GetSuppliers)
	r.POST("/suppliers", h.CreateSupplier)
	r.POST("/supplier-charges", h.CreateSupplierCharge)
	r.GET("/pricing", h.GetPricing)
	r.PUT("/pricing/markup", h.SetGlobalMarkup)
	r.POST("/pricing/markup/apply-all", h.ApplyMarkupToAll)
	r.PUT("/pricing/items/:id/markup", h.SetItemMarkup)
	r.DELETE("/pricing/items/:id/markup", h.ResetItemMarkup)
	r.POST("/pricing/reload", h.ReloadPricing)
	r.POST("/pricing/assistant", h.AskAssistant)
	r.GET("/price-sheet", h.GetPriceSheet)
	return r, h
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

type pricingResponse struct {
	Items       []models.PricedFlowerItem `json:"items"`
	Totals      models.PricingTotals      `json:"totals"`
	Markup      float64                   `json:"markup"`
	ItemMarkups map[string]float64        `json:"itemMarkups"`
}

// seedPricing creates supplier A with two items and a 30.00 shipment charge.
func seedPricing(t *testing.T, r http.Handler) (string, []models.FlowerItem) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/suppliers", `{"name":"A","location":"Aalsmeer"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create supplier: %d %s", w.Code, w.Body)
	}
	supplier := decode[struct {
		Supplier models.Supplier `json:"supplier"`
	}](t, w).Supplier

	body := `{"flowers":[
		{"flowerType":"Rose","name":"Item1","quantity":10,"wholesaleCost":50,"supplierId":"` + supplier.ID + `","date":"2024-05-01","boxes":1},
		{"flowerType":"Rose","name":"Item2","quantity":5,"wholesaleCost":25,"supplierId":"` + supplier.ID + `","date":"2024-05-01","boxes":1,"unit":"Per Stem"}
	]}`
	w = doJSON(t, r, http.MethodPost, "/flowers", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create flowers: %d %s", w.Code, w.Body)
	}
	flowers := decode[struct {
		Flowers []models.FlowerItem `json:"flowers"`
	}](t, w).Flowers

	w = doJSON(t, r, http.MethodPost, "/supplier-charges",
		`{"chargeType":"Freight","amount":30,"supplierId":"`+supplier.ID+`","date":"2024-05-01","unitOfCharge":"Per Shipment"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create charge: %d %s", w.Code, w.Body)
	}
	return supplier.ID, flowers
}

func TestCreateAndPrice(t *testing.T) {
	r, _ := newTestRouter(t)
	_, flowers := seedPricing(t, r)
	if len(flowers) != 2 || flowers[0].ID == "" {
		t.Fatalf("unexpected created flowers: %+v", flowers)
	}

	w := doJSON(t, r, http.MethodGet, "/pricing", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	res := decode[pricingResponse](t, w)
	if res.Markup != 40 || len(res.Items) != 2 {
		t.Fatalf("unexpected pricing: %+v", res)
	}
	if res.Items[0].StemCost != 6.5 || res.Items[0].RetailPerStem != 9.1 || res.Items[1].RetailPerStem != 11.2 {
		t.Errorf("unexpected priced items: %+v", res.Items)
	}
	if res.Totals != (models.PricingTotals{Wholesale: 75, WholesaleWithCharges: 105, Retail: 147}) {
		t.Errorf("totals = %+v", res.Totals)
	}
}

func TestMarkupEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	_, flowers := seedPricing(t, r)
	id := flowers[0].ID

	w := doJSON(t, r, http.MethodPut, "/pricing/markup", `{"markup":-5}`)
	if got := decode[pricingResponse](t, w).Markup; got != 0 {
		t.Errorf("negative markup should clamp to 0, got %v", got)
	}

	doJSON(t, r, http.MethodPut, "/pricing/markup", `{"markup":40}`)
	w = doJSON(t, r, http.MethodPut, "/pricing/items/"+id+"/markup", `{"markup":100}`)
	res := decode[pricingResponse](t, w)
	if res.ItemMarkups[id] != 100 || res.Items[0].RetailPerStem != 13 {
		t.Errorf("override not applied: %+v", res)
	}

	w = doJSON(t, r, http.MethodPut, "/pricing/items/"+id+"/markup", `{"markup":null}`)
	if _, ok := decode[pricingResponse](t, w).ItemMarkups[id]; ok {
		t.Error("null markup should clear the override")
	}

	w = doJSON(t, r, http.MethodPost, "/pricing/markup/apply-all", "")
	if got := decode[pricingResponse](t, w).ItemMarkups; len(got) != 2 || got[id] != 40 {
		t.Errorf("apply-all should snapshot 40 on every item, got %v", got)
	}

	w = doJSON(t, r, http.MethodDelete, "/pricing/items/"+id+"/markup", "")
	if _, ok := decode[pricingResponse](t, w).ItemMarkups[id]; ok {
		t.Error("delete should clear the override")
	}

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		w = doJSON(t, r, method, "/pricing/items/missing/markup", `{"markup":10}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s unknown item: status = %d, want 404", method, w.Code)
		}
	}

	w = doJSON(t, r, http.MethodPut, "/pricing/markup", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing markup: status = %d, want 400", w.Code)
	}
}

func TestCreateFlowersValidation(t *testing.T) {
	r, h := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty batch", `{"flowers":[]}`, "flowers must contain at least 1 entries"},
		{"zero quantity", `{"flowers":[{"flowerType":"Rose","name":"A","quantity":0,"wholesaleCost":1,"supplierId":"1","date":"d","boxes":1}]}`, "flowers[0].quantity is required"},
		{"negative cost", `{"flowers":[{"flowerType":"Rose","name":"A","quantity":1,"wholesaleCost":-1,"supplierId":"1","date":"d","boxes":1}]}`, "flowers[0].wholesaleCost must be at least 0"},
		{"missing boxes", `{"flowers":[{"flowerType":"Rose","name":"A","quantity":1,"wholesaleCost":1,"supplierId":"1","date":"d"}]}`, "flowers[0].boxes is required"},
		{"bad unit", `{"flowers":[{"flowerType":"Rose","name":"A","quantity":1,"wholesaleCost":1,"supplierId":"1","date":"d","boxes":1,"unit":"Per Box"}]}`, "flowers[0].unit must be one of"},
		{"blank name", `{"flowers":[{"flowerType":"Rose","name":"  ","quantity":1,"wholesaleCost":1,"supplierId":"1","date":"d","boxes":1}]}`, "must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/flowers", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", w.Code, w.Body)
			}
			if msg := decode[gin.H](t, w)["error"].(string); !strings.Contains(msg, tt.want) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.want)
			}
		})
	}

	if n := len(h.Planner.Snapshot().Items()); n != 0 {
		t.Errorf("rejected batches changed state: %d items", n)
	}
}

func TestCreateChargeValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/supplier-charges",
		`{"chargeType":"Freight","amount":10,"supplierId":"1","date":"d","unitOfCharge":"Per Shipment","boxCount":2}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("box count on a shipment charge: status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/supplier-charges", `{"chargeType":"Freight","amount":-1,"supplierId":"1","date":"d"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative amount: status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/supplier-charges", `{"chargeType":"Freight","amount":0,"supplierId":"1","date":"d","boxCount":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body)
	}
	charge := decode[struct {
		Charge models.SupplierCharge `json:"charge"`
	}](t, w).Charge
	if charge.UnitOfCharge != models.ChargePerBox || charge.BoxCount == nil || *charge.BoxCount != 3 {
		t.Errorf("omitted unit should default to Per Box: %+v", charge)
	}
}

func TestCreateSupplierRequiresNameAndLocation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/suppliers", `{"name":"A"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if msg := decode[gin.H](t, w)["error"].(string); msg != "location is required" {
		t.Errorf("error = %q", msg)
	}

	w = doJSON(t, r, http.MethodGet, "/suppliers", "")
	if got := decode[struct {
		Suppliers []models.Supplier `json:"suppliers"`
	}](t, w).Suppliers; len(got) != 0 {
		t.Errorf("suppliers = %+v, want none", got)
	}
}

func TestPriceSheet(t *testing.T) {
	r, _ := newTestRouter(t)
	seedPricing(t, r)

	w := doJSON(t, r, http.MethodGet, "/price-sheet", "")
	sheet := decode[pricing.PriceSheet](t, w)
	if len(sheet.Sections) != 1 || sheet.Sections[0].Slug != "rose" || len(sheet.Sections[0].Items) != 2 {
		t.Fatalf("unexpected sheet: %+v", sheet)
	}
	if sheet.Formatted["retail"] != "$147.00" {
		t.Errorf("formatted retail = %q", sheet.Formatted["retail"])
	}
}

func TestReloadPricing(t *testing.T) {
	r, _ := newTestRouter(t)
	seedPricing(t, r)

	w := doJSON(t, r, http.MethodPost, "/pricing/reload", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if res := decode[pricingResponse](t, w); res.Totals.Retail != 147 {
		t.Errorf("reloaded totals = %+v", res.Totals)
	}
}

func TestAskAssistant(t *testing.T) {
	r, h := newTestRouter(t)
	seedPricing(t, r)

	w := doJSON(t, r, http.MethodPost, "/pricing/assistant", `{"question":"What do roses cost?"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("disabled assistant: status = %d, want 503", w.Code)
	}

	fake := &fakeAssistant{}
	h.Assistant = fake
	w = doJSON(t, r, http.MethodPost, "/pricing/assistant", `{"question":"What do roses cost?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body)
	}
	res := decode[struct {
		Answer string `json:"answer"`
		Tokens int    `json:"tokens"`
	}](t, w)
	if res.Tokens != 42 || fake.question != "What do roses cost?" || fake.sections != 1 {
		t.Errorf("unexpected assistant call: %+v %+v", res, fake)
	}

	fake.err = errors.New("quota exceeded")
	w = doJSON(t, r, http.MethodPost, "/pricing/assistant", `{"question":"Again?"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("failing assistant: status = %d, want 502", w.Code)
	}
}

func TestHugeButValidInputsStillPrice(t *testing.T) {
	r, h := newTestRouter(t)
	supplierID, _ := seedPricing(t, r)

	body := `{"flowers":[{"flowerType":"Rose","name":"Huge","quantity":0.5,"wholesaleCost":1e308,"supplierId":"` + supplierID + `","date":"2024-05-01","boxes":1}]}`
	if w := doJSON(t, r, http.MethodPost, "/flowers", body); w.Code != http.StatusCreated {
		t.Fatalf("create flowers: %d %s", w.Code, w.Body)
	}
	if w := doJSON(t, r, http.MethodPut, "/pricing/markup", `{"markup":1e308}`); w.Code != http.StatusOK {
		t.Fatalf("set markup: %d %s", w.Code, w.Body)
	}

	for _, path := range []string{"/pricing", "/price-sheet"} {
		w := doJSON(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusOK || !json.Valid(w.Body.Bytes()) {
			t.Errorf("GET %s: %d %s", path, w.Code, w.Body)
		}
	}

	// The stored record must not break a later reload.
	if w := doJSON(t, r, http.MethodPost, "/pricing/reload", ""); w.Code != http.StatusOK {
		t.Errorf("reload: %d %s", w.Code, w.Body)
	}
	if n := len(h.Planner.Snapshot().Items()); n != 3 {
		t.Errorf("items = %d, want 3", n)
	}
}
