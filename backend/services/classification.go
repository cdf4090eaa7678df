// ABOUTME: Batch separator-type classification for tables of wells
// ABOUTME: Derives phase volumes per well and applies an ordered first-match rule table

package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/markalston/separator-sizer/backend/models"
)

// Conversion factors used by the phase volume derivation
const (
	barrelToCubicMeter   = 0.159
	cubicFootToMeter     = 0.0283168
	barrelToCubicFoot    = 5.6146
	minLiquidFraction    = 0.0001
	airMolarMass         = 28.97
	gasConstant          = 8.314
	separatedLiquidScale = 1000.0
	cubicMeterToFoot     = 35.315
)

// Rule is one entry of the classification table. Rules are evaluated in
// order and the first match decides the separator type.
type Rule struct {
	Name    string
	Matches func(w models.WellRecord) bool
	Type    models.SeparatorType
	Reason  string
}

// classificationRules is ordered. Rows matching several predicates take
// the earliest rule, e.g. gas 20 and water 9000 resolves to rule 1 not rule 3.
var classificationRules = []Rule{
	{
		Name:    "high-gas-or-water",
		Matches: func(w models.WellRecord) bool { return w.GasFlow > 15 || w.WaterFlow > 8000 },
		Type:    models.SeparatorHorizontal,
		Reason:  "Handles high gas and water flow efficiently due to a larger settling area.",
	},
	{
		Name:    "high-sand",
		Matches: func(w models.WellRecord) bool { return w.SandContent > 5 },
		Type:    models.SeparatorVertical,
		Reason:  "Recommended for high sand content to minimize clogging.",
	},
	{
		Name: "multiphase",
		Matches: func(w models.WellRecord) bool {
			return w.GasFlow > 10 && w.WaterFlow > 5000 && w.SandContent < 5
		},
		Type:   models.SeparatorHorizontal,
		Reason: "High gas, water, and sand content; suitable for managing multiphase flows.",
	},
	{
		Name:    "heavy-gas",
		Matches: func(w models.WellRecord) bool { return w.GasSpecificGravity > 0.8 },
		Type:    models.SeparatorHorizontal,
		Reason:  "Better suited for gases with higher specific gravity, offering sufficient retention time.",
	},
	{
		Name: "offshore-high-oil",
		Matches: func(w models.WellRecord) bool {
			return w.FieldType == models.FieldTypeOffshore && w.OilFlow > 1000
		},
		Type:   models.SeparatorVertical,
		Reason: "Compact design suitable for installations with high oil flow, where space is limited.",
	},
	{
		Name:    "heavy-oil-high-water",
		Matches: func(w models.WellRecord) bool { return w.OilAPIGravity < 25 && w.WaterFlow > 4000 },
		Type:    models.SeparatorHorizontal,
		Reason:  "Heavy oil and significant water flow require efficient separation.",
	},
	{
		Name:    "gas-dominant",
		Matches: func(w models.WellRecord) bool { return w.GasFlow > 20 && w.OilFlow < 500 },
		Type:    models.SeparatorHorizontal,
		Reason:  "High gas-to-oil ratio; better suited for gas-dominant conditions.",
	},
	{
		Name:    "low-gor",
		Matches: func(w models.WellRecord) bool { return w.GasFlow < 5 && w.WaterFlow < 3000 },
		Type:    models.SeparatorVertical,
		Reason:  "Suitable for low GOR.",
	},
	{
		Name:    "light-oil",
		Matches: func(w models.WellRecord) bool { return w.OilAPIGravity > 40 },
		Type:    models.SeparatorVertical,
		Reason:  "Optimal for light oil with high API gravity.",
	},
	{
		Name:    "default",
		Matches: func(models.WellRecord) bool { return true },
		Type:    models.SeparatorVertical,
		Reason:  "Default choice for general conditions.",
	},
}

// Rules returns a copy of the ordered classification table
func Rules() []Rule {
	out := make([]Rule, len(classificationRules))
	copy(out, classificationRules)
	return out
}

// Classifier recommends a separator orientation per well
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier using the standard rule table
func NewClassifier() *Classifier {
	return &Classifier{rules: classificationRules}
}

// Classify returns one recommendation per well, in input order. A well with
// a water cut of 100% or more aborts the whole batch.
func (c *Classifier) Classify(wells []models.WellRecord) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0, len(wells))
	for i, w := range wells {
		rec, err := c.classifyWell(w)
		if err != nil {
			if wc, ok := err.(*WaterCutError); ok {
				wc.Row = i + 1
			}
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (c *Classifier) classifyWell(w models.WellRecord) (models.Recommendation, error) {
	gor := 0.0
	if w.OilFlow != 0 {
		gor = w.GasFlow / w.OilFlow
	}

	waterCut := 0.0
	if total := w.OilFlow + w.GasFlow + w.WaterFlow; total != 0 {
		waterCut = w.WaterFlow / total
	}
	if waterCut >= 1 {
		return models.Recommendation{}, &WaterCutError{WaterCut: waterCut}
	}

	phases := phaseVolumes(w.OilFlow, gor, waterCut)

	rec := models.Recommendation{
		Well:           w,
		GOR:            gor,
		WaterCut:       waterCut,
		Phases:         phases,
		OilSG:          oilSpecificGravity(w.OilAPIGravity),
		GasMolarMass:   w.GasSpecificGravity * airMolarMass / 1000,
		SeparatedOil:   phases.OilVolume * separatedLiquidScale,
		SeparatedWater: phases.WaterVolume * separatedLiquidScale,
		SeparatedGas:   phases.GasVolume * cubicMeterToFoot,
	}
	if w.OperatingTemp != 0 {
		rec.GasDensity = w.OperatingPressure * rec.GasMolarMass / (gasConstant * w.OperatingTemp)
	}

	for i, r := range c.rules {
		if r.Matches(w) {
			rec.SeparatorType = r.Type
			rec.Reason = r.Reason
			rec.Rule = i + 1
			break
		}
	}

	return rec, nil
}

// phaseVolumes converts flows to m³ and splits the total fluid volume into
// oil, gas and water shares
func phaseVolumes(oilFlow, gor, waterCut float64) models.PhaseVolumes {
	oil := oilFlow * barrelToCubicMeter
	gas := oil * gor * cubicFootToMeter / barrelToCubicFoot
	totalFluid := (oil + gas) / math.Max(1-waterCut, minLiquidFraction)
	water := totalFluid * waterCut

	p := models.PhaseVolumes{
		OilVolume:        oil,
		GasVolume:        gas,
		WaterVolume:      water,
		TotalFluidVolume: totalFluid,
	}
	if totalFluid != 0 {
		p.OilFraction = oil / totalFluid
		p.GasFraction = gas / totalFluid
		p.WaterFraction = water / totalFluid
	}
	p.OilPercent = p.OilFraction * 100
	p.GasPercent = p.GasFraction * 100
	p.WaterPercent = p.WaterFraction * 100
	return p
}

// ClassifyTable checks the header once for all required columns, parses each
// row and classifies the batch. Errors name the data row as numbered in the
// table, blank rows included.
func (c *Classifier) ClassifyTable(table models.WellTable) ([]models.Recommendation, error) {
	wells, rows, err := ParseWellTable(table)
	if err != nil {
		return nil, err
	}

	recs, err := c.Classify(wells)
	var wc *WaterCutError
	if errors.As(err, &wc) {
		wc.Row = rows[wc.Row-1]
	}
	return recs, err
}

// ParseWellTable converts a raw table into typed well records. Column names
// are matched after trimming whitespace; extra columns are ignored. Blank
// rows are skipped, so rows holds the 1-based table row of each well.
func ParseWellTable(table models.WellTable) (wells []models.WellRecord, rows []int, err error) {
	index := make(map[string]int, len(table.Header))
	for i, name := range table.Header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range models.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingFieldError{Columns: missing}
	}

	wells = make([]models.WellRecord, 0, len(table.Rows))
	rows = make([]int, 0, len(table.Rows))
	for i, row := range table.Rows {
		if blankRow(row) {
			continue
		}

		cell := func(col string) string {
			j := index[col]
			if j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		var parseErr error
		number := func(col string) float64 {
			if parseErr != nil {
				return 0
			}
			v, err := strconv.ParseFloat(cell(col), 64)
			if err != nil {
				parseErr = invalidInput("row %d column %q: %q is not a number", i+1, col, sanitizeForLog(cell(col)))
			}
			return v
		}

		w := models.WellRecord{
			GasFlow:            number(models.ColumnGasFlow),
			OilFlow:            number(models.ColumnOilFlow),
			WaterFlow:          number(models.ColumnWaterFlow),
			SandContent:        number(models.ColumnSandContent),
			OperatingPressure:  number(models.ColumnPressure),
			OperatingTemp:      number(models.ColumnTemperature),
			OilAPIGravity:      number(models.ColumnOilAPI),
			GasSpecificGravity: number(models.ColumnGasSG),
			FieldType:          cell(models.ColumnFieldType),
		}
		if parseErr != nil {
			return nil, nil, parseErr
		}
		wells = append(wells, w)
		rows = append(rows, i+1)
	}

	return wells, rows, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// String describes a rule for logs
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Name, r.Type)
}
