package usecases

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/ibarra/sarscope/internal/core/domain"
)

// Placeholder sentences used when an enrichment stage produced nothing.
const (
	NoColorsPlaceholder = "No color analysis data is available for this image."
	NoTagsPlaceholder   = "No descriptive tags are available for this image."
)

// backscatterChart maps SAR preview color bands to physical surface
// interpretations. Domain reference material, not derived from inputs.
var backscatterChart = dedent.Dedent(`
	Reference chart (SAR backscatter color bands):
	- Black / very dark gray: smooth open water, calm seas, roads, runways (specular reflection away from the sensor, near-zero backscatter)
	- Dark blue / deep gray: wet soil, flooded land, low-wind water surfaces (low backscatter)
	- Green: vegetation canopies, cropland, grassland (moderate volume scattering)
	- Yellow / tan: bare earth, sand, sparse scrub (moderate surface scattering)
	- Orange / brown: exposed rock, rough terrain, slopes facing the sensor (high backscatter)
	- White / very bright: buildings, metal structures, ships, corner reflectors (double-bounce, very high backscatter)
	- Speckled gray: mixed urban fabric or noise-like texture from heterogeneous scatterers`)

var promptInstructions = dedent.Dedent(`
	Instructions:
	- Interpret each dominant color of the image using the reference chart above.
	- Summarize the overall scene in 4-6 sentences.
	- Explicitly mention the capture time, flight direction, and the queried coordinates.
	- Note that SAR interpretation carries uncertainty without ground-truth verification.
	- Do not use emojis.`)

// BuildPrompt composes the interpretation prompt from the color analysis,
// the retained tags, and the scene metadata. Pure and deterministic:
// identical inputs produce byte-identical output.
func BuildPrompt(colors []domain.ColorSample, tags []string, meta domain.SceneMetadata) string {
	var b strings.Builder

	b.WriteString("You are a SAR (Synthetic Aperture Radar) imagery analyst.\n\n")

	b.WriteString("Dominant colors in the preview image:\n")
	if len(colors) == 0 {
		b.WriteString(NoColorsPlaceholder)
		b.WriteString("\n")
	} else {
		for _, c := range colors {
			name := c.Name
			if name == "" {
				name = c.Palette
			}
			fmt.Fprintf(&b, "- %s: %.1f%%\n", name, c.Percent)
		}
	}

	b.WriteString("\nDetected tags: ")
	if len(tags) == 0 {
		b.WriteString(NoTagsPlaceholder)
	} else {
		b.WriteString(strings.Join(tags, ", "))
	}
	b.WriteString("\n")

	b.WriteString(backscatterChart)
	b.WriteString("\n")
	b.WriteString(promptInstructions)
	b.WriteString("\n\nScene metadata:\n")

	// MarshalIndent over a struct is deterministic: field order is fixed.
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		metaJSON = []byte("{}")
	}
	b.Write(metaJSON)

	return strings.TrimSpace(b.String())
}
