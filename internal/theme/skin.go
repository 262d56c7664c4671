package theme

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oasis-os/oasis/internal/oerr"
	"github.com/oasis-os/oasis/internal/sdi"
	"github.com/oasis-os/oasis/internal/vfs"
)

// SkinPalette is the 9-color palette a skin file declares; Theme.Derive
// turns it into the full set of semantic slots. Defaults match the
// reference palette so a skin file may override only the colors it cares
// about.
type SkinPalette struct {
	Background string `yaml:"background"`
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Text       string `yaml:"text"`
	DimText    string `yaml:"dim_text"`
	StatusBar  string `yaml:"status_bar"`
	Prompt     string `yaml:"prompt"`
	Output     string `yaml:"output"`
	Error      string `yaml:"error"`

	// ShadowIntensity selects the elevation table Derive uses for
	// shadow_card/dropdown/modal/tooltip; clamped to {1,2,3,2} by Derive.
	ShadowIntensity int `yaml:"shadow_intensity"`

	// Overrides win over every derived value when non-empty/non-zero.
	Overrides SkinOverrides `yaml:"overrides"`
}

// SkinOverrides lets a skin file pin specific derived slots instead of
// letting Derive compute them.
type SkinOverrides struct {
	Surface     string `yaml:"surface"`
	AccentHover string `yaml:"accent_hover"`
}

// DefaultSkin returns the reference palette.
func DefaultSkin() SkinPalette {
	return SkinPalette{
		Background:      "#1A1A2D",
		Primary:         "#3264C8",
		Secondary:       "#505050",
		Text:            "#FFFFFF",
		DimText:         "#808080",
		StatusBar:       "#283C5A",
		Prompt:          "#00FF00",
		Output:          "#CCCCCC",
		Error:           "#FF4444",
		ShadowIntensity: 1,
	}
}

// LoadSkin reads a YAML skin file from a host path, filling any
// zero-value field from DefaultSkin so a partial skin file is valid.
func LoadSkin(path string) (SkinPalette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkinPalette{}, oerr.Wrap(oerr.KindIo, "read skin file", err)
	}
	return parseSkin(data)
}

// LoadSkinFromVFS reads a YAML skin file at path inside fs, since skin
// files are expected to live on the virtual filesystem alongside the
// content a session is browsing rather than only on the host disk.
func LoadSkinFromVFS(fs vfs.VFS, path string) (SkinPalette, error) {
	data, err := fs.Read(path)
	if err != nil {
		return SkinPalette{}, oerr.Wrap(oerr.KindVfs, "read skin file", err)
	}
	return parseSkin(data)
}

func parseSkin(data []byte) (SkinPalette, error) {
	skin := DefaultSkin()
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return SkinPalette{}, oerr.Wrap(oerr.KindIo, "parse skin file", err)
	}
	return skin, nil
}

func (s SkinPalette) colors() (bg, primary, secondary, text, dim, statusBar, prompt, output, errc sdi.Color) {
	return ParseHex(s.Background), ParseHex(s.Primary), ParseHex(s.Secondary),
		ParseHex(s.Text), ParseHex(s.DimText), ParseHex(s.StatusBar),
		ParseHex(s.Prompt), ParseHex(s.Output), ParseHex(s.Error)
}
