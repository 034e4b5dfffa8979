package model

// Detection is one label found in an image. Confidence is in [0, 1].
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
