// Package analysis is the client boundary to the external clinical-note
// analysis service. It submits uploaded files, decodes the service's wire
// format, and normalizes it into the domain model in one place so nothing
// downstream has to deal with stringified decimals or shape variations.
package analysis

// PatientResponse is one per-patient record in the analysis response.
type PatientResponse struct {
	BasicData   BasicData                        `json:"basic_data"`
	DownloadURL string                           `json:"download_url"`
	PageWiseOCR map[string]string                `json:"page_wise_ocr"`
	Metadata    map[string]map[string][]WireSpan `json:"metadata"`
	RAFScores   WireRAFScores                    `json:"raf_scores"`
}

// BasicData carries the patient's identity fields.
type BasicData struct {
	Member   string `json:"member"`
	Facility string `json:"facility"`
	Provider string `json:"provider"`
}

// WireSpan is one evidence span inside a page of OCR text.
type WireSpan struct {
	Text     string `json:"text"`
	StartIdx int    `json:"start_idx"`
	EndIdx   int    `json:"end_idx"`
}

// WireRAFScores holds the stringified decimal RAF fields. The triple-p in
// DroppedHCCRAF's JSON tag matches the upstream service's field name.
type WireRAFScores struct {
	CurrentRAF     string `json:"current_raf"`
	AIDeltaRAF     string `json:"ai_delta_raf"`
	DroppedHCCRAF  string `json:"droppped_hcc_raf"`
	MissingPOC     string `json:"missing_poc"`
	TotalPotential string `json:"total_potential"`
}
