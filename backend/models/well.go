// ABOUTME: Data models for batch separator-type classification
// ABOUTME: Well records, raw tabular input and per-well recommendations

package models

// SeparatorType is the recommended vessel orientation
type SeparatorType string

const (
	SeparatorVertical   SeparatorType = "Vertical"
	SeparatorHorizontal SeparatorType = "Horizontal"
)

// Label returns the report wording, e.g. "Vertical Separator"
func (t SeparatorType) Label() string {
	return string(t) + " Separator"
}

// Column names required in an uploaded well table
const (
	ColumnGasFlow     = "Gas Flow"
	ColumnOilFlow     = "Oil Flow"
	ColumnWaterFlow   = "Water Flow"
	ColumnSandContent = "Sand Content"
	ColumnPressure    = "Operating Pressure"
	ColumnTemperature = "Operating Temperature"
	ColumnOilAPI      = "Oil API Gravity"
	ColumnGasSG       = "Gas Specific Gravity"
	ColumnFieldType   = "Field Type"
)

// Field type values with dedicated rules
const (
	FieldTypeOffshore = "Offshore"
	FieldTypeOnshore  = "Onshore"
)

// RequiredColumns lists the well table columns in report order
var RequiredColumns = []string{
	ColumnGasFlow,
	ColumnOilFlow,
	ColumnWaterFlow,
	ColumnSandContent,
	ColumnPressure,
	ColumnTemperature,
	ColumnOilAPI,
	ColumnGasSG,
	ColumnFieldType,
}

// WellRecord is one row of well process data.
// Gas flow is MMscf/d, oil and water flow bbl/d, sand content percent.
type WellRecord struct {
	GasFlow            float64 `json:"gas_flow"`
	OilFlow            float64 `json:"oil_flow"`
	WaterFlow          float64 `json:"water_flow"`
	SandContent        float64 `json:"sand_content"`
	OperatingPressure  float64 `json:"operating_pressure"`
	OperatingTemp      float64 `json:"operating_temperature"`
	OilAPIGravity      float64 `json:"oil_api_gravity"`
	GasSpecificGravity float64 `json:"gas_specific_gravity"`
	FieldType          string  `json:"field_type"`
}

// WellTable is a raw table as read from a spreadsheet, before typing
type WellTable struct {
	Header []string
	Rows   [][]string
}

// PhaseVolumes holds per-phase volumes (m³), fractions of the total fluid
// volume and the same fractions as percentages
type PhaseVolumes struct {
	OilVolume        float64 `json:"oil_volume"`
	GasVolume        float64 `json:"gas_volume"`
	WaterVolume      float64 `json:"water_volume"`
	TotalFluidVolume float64 `json:"total_fluid_volume"`
	OilFraction      float64 `json:"oil_fraction"`
	GasFraction      float64 `json:"gas_fraction"`
	WaterFraction    float64 `json:"water_fraction"`
	OilPercent       float64 `json:"oil_percent"`
	GasPercent       float64 `json:"gas_percent"`
	WaterPercent     float64 `json:"water_percent"`
}

// Recommendation is the classification outcome for one well
type Recommendation struct {
	Well           WellRecord    `json:"well"`
	SeparatorType  SeparatorType `json:"separator_type"`
	Reason         string        `json:"reason"`
	Rule           int           `json:"rule"`
	GOR            float64       `json:"gor"`
	WaterCut       float64       `json:"water_cut"`
	Phases         PhaseVolumes  `json:"phases"`
	OilSG          float64       `json:"oil_sg"`
	GasMolarMass   float64       `json:"gas_molar_mass"`
	GasDensity     float64       `json:"gas_density"`
	SeparatedOil   float64       `json:"separated_oil"`
	SeparatedWater float64       `json:"separated_water"`
	SeparatedGas   float64       `json:"separated_gas"`
}

// ClassificationResponse wraps a classified batch
type ClassificationResponse struct {
	BatchID         string           `json:"batch_id"`
	Count           int              `json:"count"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ClassificationRequest is the JSON body accepted in place of a spreadsheet
type ClassificationRequest struct {
	Wells []WellRecord `json:"wells"`
}
