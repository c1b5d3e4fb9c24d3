package diagnosis

import (
	"fmt"
	"slices"
	"strings"
)

// Crop types offered by the context form.
var CropTypes = []string{
	"wheat", "corn", "barley", "soybean", "rapeseed", "sunflower", "potato", "vineyard",
}

// Growth stages offered by the context form.
var GrowthStages = []string{
	"germination", "seedling", "tillering", "stem-extension", "heading", "flowering", "ripening",
}

// CropContext is the metadata the user attaches to a photo.
type CropContext struct {
	CropType    string `json:"crop_type"`
	GrowthStage string `json:"growth_stage"`
	Location    string `json:"location"`
}

// Validate checks the enumerated fields. Location is free text but required.
func (c CropContext) Validate() error {
	if !slices.Contains(CropTypes, c.CropType) {
		return fmt.Errorf("%w: crop type %q", ErrInvalidContext, c.CropType)
	}
	if !slices.Contains(GrowthStages, c.GrowthStage) {
		return fmt.Errorf("%w: growth stage %q", ErrInvalidContext, c.GrowthStage)
	}
	if strings.TrimSpace(c.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidContext)
	}
	return nil
}

func (c CropContext) String() string {
	return fmt.Sprintf("Culture: %s, Stade: %s, Localisation: %s", c.CropType, c.GrowthStage, c.Location)
}
