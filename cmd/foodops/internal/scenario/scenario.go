// Package scenario loads the YAML scenario documents the reference CLI
// host runs against. The kernel itself never parses YAML — per
// spec.md §6 it only ever sees already-deserialized Go structs — so
// everything in this package ends at a call into catalog.Load,
// market.Scenario, or simulation.RestaurantSpec.
package scenario

import (
	"fmt"
	"os"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/market"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/simulation"
	"gopkg.in/yaml.v3"
)

// Document is the top-level shape of a scenario YAML file.
type Document struct {
	Name              string               `yaml:"name"`
	Description       string               `yaml:"description"`
	Turns             int                  `yaml:"turns"`
	Seed              int64                `yaml:"seed"`
	BaseDemand        float64              `yaml:"base_demand"`
	DemandNoise       float64              `yaml:"demand_noise"`
	TurnDuration      string               `yaml:"turn_duration"`
	ConsumptionPolicy string               `yaml:"consumption_policy"`
	StartMonth        int                  `yaml:"start_month"`
	Segments          []segmentDoc         `yaml:"segments"`
	Ingredients       []ingredientDoc      `yaml:"ingredients"`
	QualityVariants   []qualityVariantDoc  `yaml:"quality_variants"`
	Suppliers         []supplierDoc        `yaml:"suppliers"`
	Offers            []offerDoc           `yaml:"offers"`
	Recipes           []recipeDoc          `yaml:"recipes"`
	Events            []eventDoc           `yaml:"events"`
	Restaurants       []restaurantDoc      `yaml:"restaurants"`
}

type segmentDoc struct {
	Name               string             `yaml:"name"`
	Share              float64            `yaml:"share"`
	Budget             string             `yaml:"budget"`
	PriceSensitivity   float64            `yaml:"price_sensitivity"`
	QualitySensitivity float64            `yaml:"quality_sensitivity"`
	TypeAffinity       map[string]float64 `yaml:"type_affinity"`
}

type ingredientDoc struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Unit          string  `yaml:"unit"`
	BaseCostHT    string  `yaml:"base_cost_ht"`
	VATRate       float64 `yaml:"vat_rate"`
	ShelfLifeDays int     `yaml:"shelf_life_days"`
	Category      string  `yaml:"category"`
}

type qualityVariantDoc struct {
	IngredientID        string  `yaml:"ingredient_id"`
	QualityLevel        int     `yaml:"quality_level"`
	RangeTag            string  `yaml:"range_tag"`
	SupplierID          string  `yaml:"supplier_id"`
	CostMultiplier      float64 `yaml:"cost_multiplier"`
	SatisfactionBonus   float64 `yaml:"satisfaction_bonus"`
	PrepTimeMultiplier  float64 `yaml:"prep_time_multiplier"`
	ShelfLifeMultiplier float64 `yaml:"shelf_life_multiplier"`
}

type supplierDoc struct {
	ID               string  `yaml:"id"`
	Reliability      float64 `yaml:"reliability"`
	LeadTimeDays     int     `yaml:"lead_time_days"`
	MOQValue         string  `yaml:"moq_value"`
	ShippingCost     string  `yaml:"shipping_cost"`
	PaymentTermsDays int     `yaml:"payment_terms_days"`
}

type offerDoc struct {
	IngredientID string  `yaml:"ingredient_id"`
	SupplierID   string  `yaml:"supplier_id"`
	QualityLevel int     `yaml:"quality_level"`
	PackSize     string  `yaml:"pack_size"`
	PackUnit     string  `yaml:"pack_unit"`
	UnitPriceHT  string  `yaml:"unit_price_ht"`
	VATRate      float64 `yaml:"vat_rate"`
	MOQQty       string  `yaml:"moq_qty"`
	MOQValue     string  `yaml:"moq_value"`
	LeadTimeDays int     `yaml:"lead_time_days"`
	Reliability  float64 `yaml:"reliability"`
	Available    bool    `yaml:"available"`
}

type recipeItemDoc struct {
	IngredientID string  `yaml:"ingredient_id"`
	QtyBrute     string  `yaml:"qty_brute"`
	YieldPrep    float64 `yaml:"yield_prep"`
	YieldCook    float64 `yaml:"yield_cook"`
}

type recipeDoc struct {
	ID             string          `yaml:"id"`
	Items          []recipeItemDoc `yaml:"items"`
	PrepMinutes    int             `yaml:"prep_minutes"`
	ServiceMinutes int             `yaml:"service_minutes"`
	Portions       int             `yaml:"portions"`
	Category       string          `yaml:"category"`
	Difficulty     int             `yaml:"difficulty"`
	Description    string          `yaml:"description"`
}

type eventDoc struct {
	ID              string             `yaml:"id"`
	Category        string             `yaml:"category"`
	BaseProbability float64            `yaml:"base_probability"`
	DurationTurns   int                `yaml:"duration_turns"`
	MinTurn         int                `yaml:"min_turn"`
	MaxTurn         int                `yaml:"max_turn"`
	Season          string             `yaml:"season"`
	Demand          float64            `yaml:"demand_mult"`
	PriceSensitivity float64           `yaml:"price_sensitivity_mult"`
	QualityImportance float64          `yaml:"quality_importance_mult"`
	PerSegment      map[string]float64 `yaml:"per_segment_mult"`
}

type employeeDoc struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name"`
	Position           string  `yaml:"position"`
	Contract           string  `yaml:"contract"`
	GrossMonthlySalary string  `yaml:"gross_monthly_salary"`
	Productivity       float64 `yaml:"productivity"`
	ExperienceMonths   int     `yaml:"experience_months"`
	PartTime           bool    `yaml:"part_time"`
	PartTimeRatio      float64 `yaml:"part_time_ratio"`
	SundayWork         bool    `yaml:"sunday_work"`
	OvertimeEligible   bool    `yaml:"overtime_eligible"`
}

type menuItemDoc struct {
	RecipeID string `yaml:"recipe_id"`
	PriceTTC string `yaml:"price_ttc"`
}

type restaurantDoc struct {
	ID                string        `yaml:"id"`
	Name              string        `yaml:"name"`
	Type              string        `yaml:"type"`
	BaseCapacity      float64       `yaml:"base_capacity"`
	ServiceSpeed      float64       `yaml:"service_speed"`
	StartingCash      string        `yaml:"starting_cash"`
	MonthlyRent       string        `yaml:"monthly_rent"`
	MonthlyFixedCosts string        `yaml:"monthly_fixed_costs"`
	Employees         []employeeDoc `yaml:"employees"`
	Menu              []menuItemDoc `yaml:"menu"`
	StaffingLevel     int           `yaml:"staffing_level"`
}

// Loaded is everything Load builds from one scenario file, ready to feed
// into simulation.New and repeated AddRestaurant calls.
type Loaded struct {
	Scenario    market.Scenario
	Catalog     *catalog.Catalog
	Registry    *events.Registry
	Restaurants []simulation.RestaurantSpec
	Turns       int
	Seed        int64
	StartMonth  int

	menus map[string]restaurantDoc
}

// ApplyMenus sets each restaurant's opening menu and staffing level, once
// every restaurant in l.Restaurants has been added to sim via AddRestaurant
// (SetPrice requires the restaurant to already exist).
func (l *Loaded) ApplyMenus(sim *simulation.Simulation) error {
	for id, rd := range l.menus {
		r, ok := sim.Restaurants[id]
		if !ok {
			continue
		}
		if err := applyMenu(r, rd); err != nil {
			return err
		}
	}
	return nil
}

// Load reads and validates a scenario YAML file. Errors from this function
// are "scenario invalid" failures (spec.md §6 exit code 3), distinct from
// the file-not-found/unreadable case the caller should treat as exit code 2.
func Load(path string) (*Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing scenario yaml: %w", err)
	}
	return build(doc)
}

func build(doc Document) (*Loaded, error) {
	segments := make([]market.Segment, 0, len(doc.Segments))
	for _, s := range doc.Segments {
		budget, err := money.NewMoney(s.Budget)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", s.Name, err)
		}
		segments = append(segments, market.Segment{
			Name:               s.Name,
			Share:              s.Share,
			Budget:             budget,
			TypeAffinity:       s.TypeAffinity,
			PriceSensitivity:   s.PriceSensitivity,
			QualitySensitivity: s.QualitySensitivity,
		})
	}

	sc := market.Scenario{
		Name:              doc.Name,
		Description:       doc.Description,
		Turns:             doc.Turns,
		BaseDemand:        doc.BaseDemand,
		DemandNoise:       doc.DemandNoise,
		Segments:          segments,
		TurnDuration:      market.TurnDuration(orDefault(doc.TurnDuration, string(market.TurnDurationWeek))),
		ConsumptionPolicy: market.ConsumptionPolicy(orDefault(doc.ConsumptionPolicy, string(market.ConsumptionUniformOverMenu))),
	}
	if err := sc.ValidateShares(); err != nil {
		return nil, err
	}

	cat, err := buildCatalog(doc)
	if err != nil {
		return nil, err
	}

	registry, err := buildRegistry(doc.Events)
	if err != nil {
		return nil, err
	}

	specs := make([]simulation.RestaurantSpec, 0, len(doc.Restaurants))
	menus := make(map[string]restaurantDoc, len(doc.Restaurants))
	for _, rd := range doc.Restaurants {
		spec, err := buildRestaurantSpec(rd)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
		menus[rd.ID] = rd
	}

	startMonth := doc.StartMonth
	if startMonth <= 0 {
		startMonth = 1
	}

	return &Loaded{
		Scenario:    sc,
		Catalog:     cat,
		Registry:    registry,
		Restaurants: specs,
		Turns:       doc.Turns,
		Seed:        doc.Seed,
		StartMonth:  startMonth,
		menus:       menus,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func buildCatalog(doc Document) (*catalog.Catalog, error) {
	ingredients := make([]catalog.Ingredient, 0, len(doc.Ingredients))
	for _, i := range doc.Ingredients {
		cost, err := money.NewMoney(i.BaseCostHT)
		if err != nil {
			return nil, fmt.Errorf("ingredient %s: %w", i.ID, err)
		}
		rate, err := catalog.NewRate(i.VATRate)
		if err != nil {
			return nil, fmt.Errorf("ingredient %s: %w", i.ID, err)
		}
		ingredients = append(ingredients, catalog.Ingredient{
			ID:            i.ID,
			Name:          i.Name,
			Unit:          i.Unit,
			BaseCostHT:    cost,
			VATRate:       rate,
			ShelfLifeDays: i.ShelfLifeDays,
			Category:      i.Category,
		})
	}

	variants := make([]catalog.QualityVariant, 0, len(doc.QualityVariants))
	for _, v := range doc.QualityVariants {
		variants = append(variants, catalog.QualityVariant{
			BaseIngredientID:    v.IngredientID,
			QualityLevel:        v.QualityLevel,
			RangeTag:            v.RangeTag,
			SupplierID:          v.SupplierID,
			CostMultiplier:      v.CostMultiplier,
			SatisfactionBonus:   v.SatisfactionBonus,
			PrepTimeMultiplier:  v.PrepTimeMultiplier,
			ShelfLifeMultiplier: v.ShelfLifeMultiplier,
		})
	}

	suppliers := make([]catalog.Supplier, 0, len(doc.Suppliers))
	for _, s := range doc.Suppliers {
		moq, err := money.NewMoney(orDefault(s.MOQValue, "0"))
		if err != nil {
			return nil, fmt.Errorf("supplier %s: %w", s.ID, err)
		}
		shipping, err := money.NewMoney(orDefault(s.ShippingCost, "0"))
		if err != nil {
			return nil, fmt.Errorf("supplier %s: %w", s.ID, err)
		}
		suppliers = append(suppliers, catalog.Supplier{
			ID:               s.ID,
			Reliability:      s.Reliability,
			LeadTimeDays:     s.LeadTimeDays,
			MOQValue:         moq,
			ShippingCost:     shipping,
			PaymentTermsDays: s.PaymentTermsDays,
		})
	}

	offers := make([]catalog.SupplierOffer, 0, len(doc.Offers))
	for _, o := range doc.Offers {
		packSize, err := money.NewQty(o.PackSize)
		if err != nil {
			return nil, fmt.Errorf("offer %s/%s: %w", o.IngredientID, o.SupplierID, err)
		}
		price, err := money.NewMoney(o.UnitPriceHT)
		if err != nil {
			return nil, fmt.Errorf("offer %s/%s: %w", o.IngredientID, o.SupplierID, err)
		}
		rate, err := catalog.NewRate(o.VATRate)
		if err != nil {
			return nil, fmt.Errorf("offer %s/%s: %w", o.IngredientID, o.SupplierID, err)
		}
		moqQty, err := money.NewQty(orDefault(o.MOQQty, "0"))
		if err != nil {
			return nil, fmt.Errorf("offer %s/%s: %w", o.IngredientID, o.SupplierID, err)
		}
		moqValue, err := money.NewMoney(orDefault(o.MOQValue, "0"))
		if err != nil {
			return nil, fmt.Errorf("offer %s/%s: %w", o.IngredientID, o.SupplierID, err)
		}
		offers = append(offers, catalog.SupplierOffer{
			IngredientID: o.IngredientID,
			SupplierID:   o.SupplierID,
			QualityLevel: o.QualityLevel,
			PackSize:     packSize,
			PackUnit:     o.PackUnit,
			UnitPriceHT:  price,
			VATRate:      rate,
			MOQQty:       moqQty,
			MOQValue:     moqValue,
			LeadTimeDays: o.LeadTimeDays,
			Reliability:  o.Reliability,
			Available:    o.Available,
		})
	}

	recipes := make([]catalog.Recipe, 0, len(doc.Recipes))
	for _, r := range doc.Recipes {
		items := make([]catalog.RecipeItem, 0, len(r.Items))
		for _, it := range r.Items {
			qty, err := money.NewQty(it.QtyBrute)
			if err != nil {
				return nil, fmt.Errorf("recipe %s item %s: %w", r.ID, it.IngredientID, err)
			}
			items = append(items, catalog.RecipeItem{
				IngredientID: it.IngredientID,
				QtyBrute:     qty,
				YieldPrep:    it.YieldPrep,
				YieldCook:    it.YieldCook,
			})
		}
		recipes = append(recipes, catalog.Recipe{
			ID:             r.ID,
			Items:          items,
			PrepMinutes:    r.PrepMinutes,
			ServiceMinutes: r.ServiceMinutes,
			Portions:       r.Portions,
			Category:       r.Category,
			Difficulty:     r.Difficulty,
			Description:    r.Description,
		})
	}

	return catalog.Load(ingredients, variants, recipes, suppliers, offers)
}

func buildRegistry(docs []eventDoc) (*events.Registry, error) {
	templates := make([]events.Template, 0, len(docs))
	for _, e := range docs {
		templates = append(templates, events.Template{
			ID:              e.ID,
			Category:        events.Category(e.Category),
			BaseProbability: e.BaseProbability,
			DurationTurns:   e.DurationTurns,
			Eligibility: events.Eligibility{
				MinTurn:        e.MinTurn,
				MaxTurn:        e.MaxTurn,
				RequiredSeason: events.Season(e.Season),
			},
			Multipliers: events.Multipliers{
				Demand:            orOne(e.Demand),
				PriceSensitivity:  orOne(e.PriceSensitivity),
				QualityImportance: orOne(e.QualityImportance),
				PerSegment:        e.PerSegment,
			},
		})
	}
	return events.NewRegistry(templates...), nil
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func buildRestaurantSpec(rd restaurantDoc) (simulation.RestaurantSpec, error) {
	cash, err := money.NewMoney(orDefault(rd.StartingCash, "0"))
	if err != nil {
		return simulation.RestaurantSpec{}, fmt.Errorf("restaurant %s: %w", rd.ID, err)
	}
	rent, err := money.NewMoney(orDefault(rd.MonthlyRent, "0"))
	if err != nil {
		return simulation.RestaurantSpec{}, fmt.Errorf("restaurant %s: %w", rd.ID, err)
	}
	fixed, err := money.NewMoney(orDefault(rd.MonthlyFixedCosts, "0"))
	if err != nil {
		return simulation.RestaurantSpec{}, fmt.Errorf("restaurant %s: %w", rd.ID, err)
	}

	employees := make([]restaurant.Employee, 0, len(rd.Employees))
	for _, e := range rd.Employees {
		salary, err := money.NewMoney(orDefault(e.GrossMonthlySalary, "0"))
		if err != nil {
			return simulation.RestaurantSpec{}, fmt.Errorf("restaurant %s employee %s: %w", rd.ID, e.ID, err)
		}
		employees = append(employees, restaurant.Employee{
			ID:                 e.ID,
			Name:               e.Name,
			Position:           restaurant.Position(e.Position),
			Contract:           restaurant.Contract(e.Contract),
			GrossMonthlySalary: salary,
			Productivity:       orOne(e.Productivity),
			ExperienceMonths:   e.ExperienceMonths,
			PartTime:           e.PartTime,
			PartTimeRatio:      orOne(e.PartTimeRatio),
			SundayWork:         e.SundayWork,
			OvertimeEligible:   e.OvertimeEligible,
		})
	}

	return simulation.RestaurantSpec{
		ID:                rd.ID,
		Name:              rd.Name,
		Type:              restaurant.Type(rd.Type),
		BaseCapacity:      rd.BaseCapacity,
		ServiceSpeed:      rd.ServiceSpeed,
		StartingCash:      cash,
		MonthlyRent:       rent,
		MonthlyFixedCosts: fixed,
		Employees:         employees,
	}, nil
}

func applyMenu(r *restaurant.Restaurant, rd restaurantDoc) error {
	for _, m := range rd.Menu {
		price, err := money.NewMoney(m.PriceTTC)
		if err != nil {
			return fmt.Errorf("menu item %s: %w", m.RecipeID, err)
		}
		if err := r.SetPrice(m.RecipeID, price); err != nil {
			return err
		}
	}
	if rd.StaffingLevel != 0 {
		if err := r.SetStaffingLevel(restaurant.StaffingLevel(rd.StaffingLevel)); err != nil {
			return err
		}
	}
	return nil
}
