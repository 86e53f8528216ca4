// Package hcc holds the HCC reference data used to enrich codes returned by
// the analysis service with display descriptions and baseline RAF weights.
package hcc

// DefaultRAFValue is assumed for codes absent from the reference table.
const DefaultRAFValue = 0.3

var descriptions = map[string]string{
	"HCC19":  "Diabetes with Complications",
	"HCC85":  "Congestive Heart Failure",
	"HCC86":  "Acute Myocardial Infarction",
	"HCC84":  "Cardio-Respiratory Failure and Shock",
	"HCC8":   "Metastatic Cancer and Acute Leukemia",
	"HCC9":   "Lung and Other Severe Cancers",
	"HCC10":  "Lymphoma and Other Cancers",
	"HCC21":  "Protein-Calorie Malnutrition",
	"HCC135": "Acute Renal Failure",
}

var rafValues = map[string]float64{
	"HCC19":  0.318,
	"HCC85":  0.323,
	"HCC86":  0.321,
	"HCC84":  0.314,
	"HCC8":   2.431,
	"HCC9":   0.972,
	"HCC10":  0.638,
	"HCC21":  0.713,
	"HCC135": 0.619,
}

// Describe returns the display description for an HCC code, or the code
// itself when unknown.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return code
}

// RAFValue returns the baseline RAF weight for an HCC code.
func RAFValue(code string) float64 {
	if v, ok := rafValues[code]; ok {
		return v
	}
	return DefaultRAFValue
}
