package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/example/designstudio/internal/design"
	"github.com/example/designstudio/internal/geom"
)

type fileCatalog struct {
	Fonts     []string       `toml:"fonts"`
	Products  []fileProduct  `toml:"product"`
	Templates []fileTemplate `toml:"template"`
	Icons     []fileIcon     `toml:"icon"`
}

type fileSize struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type fileRect struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type fileProduct struct {
	ID         string   `toml:"id"`
	Name       string   `toml:"name"`
	Background string   `toml:"background"`
	Canvas     fileSize `toml:"canvas"`
	PrintArea  fileRect `toml:"print_area"`
	Info       struct {
		Type                 string `toml:"type"`
		PrintAreaDescription string `toml:"print_area_description"`
		MaxPrintSize         string `toml:"max_print_size"`
		DPI                  int    `toml:"dpi"`
	} `toml:"info"`
}

type fileTemplate struct {
	ID        string       `toml:"id"`
	Name      string       `toml:"name"`
	Category  string       `toml:"category"`
	Thumbnail string       `toml:"thumbnail"`
	Objects   []fileObject `toml:"object"`
}

type fileIcon struct {
	Name   string `toml:"name"`
	Markup string `toml:"markup"`
}

// fileObject is the flat on-disk form of a design object; Type selects which
// of the variant fields apply.
type fileObject struct {
	ID       string   `toml:"id"`
	Type     string   `toml:"type"`
	X        float64  `toml:"x"`
	Y        float64  `toml:"y"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Rotation float64  `toml:"rotation"`
	Opacity  *float64 `toml:"opacity"`
	ZIndex   int      `toml:"z_index"`

	Text           string  `toml:"text"`
	FontSize       float64 `toml:"font_size"`
	FontFamily     string  `toml:"font_family"`
	FontWeight     string  `toml:"font_weight"`
	FontStyle      string  `toml:"font_style"`
	TextDecoration string  `toml:"text_decoration"`
	Color          string  `toml:"color"`
	TextAlign      string  `toml:"text_align"`

	Src string `toml:"src"`

	ShapeType    string  `toml:"shape_type"`
	FillColor    string  `toml:"fill_color"`
	StrokeColor  string  `toml:"stroke_color"`
	StrokeWidth  float64 `toml:"stroke_width"`
	BorderRadius float64 `toml:"border_radius"`

	Markup string `toml:"markup"`
}

func decode(r io.Reader, v any) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("catalog line %d column %d: %w", row, col, err)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return fmt.Errorf("catalog: %s", serr.String())
		}
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

func (fc *fileCatalog) catalog() (*Catalog, error) {
	c := &Catalog{Fonts: fc.Fonts}
	for _, fp := range fc.Products {
		p := Product{
			ID:         fp.ID,
			Name:       fp.Name,
			Background: fp.Background,
			Canvas:     geom.Sz(fp.Canvas.Width, fp.Canvas.Height),
			PrintArea:  geom.R(fp.PrintArea.X, fp.PrintArea.Y, fp.PrintArea.Width, fp.PrintArea.Height),
			Info: ProductInfo{
				Type:                 fp.Info.Type,
				PrintAreaDescription: fp.Info.PrintAreaDescription,
				MaxPrintSize:         fp.Info.MaxPrintSize,
				DPI:                  fp.Info.DPI,
			},
		}
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if p.Canvas.Empty() {
			return nil, fmt.Errorf("product %s: empty canvas", p.ID)
		}
		if p.PrintArea.Size().Empty() {
			return nil, fmt.Errorf("product %s: empty print area", p.ID)
		}
		c.Products = append(c.Products, p)
	}
	for _, ft := range fc.Templates {
		if ft.ID == "" {
			return nil, fmt.Errorf("template %q has no id", ft.Name)
		}
		t := Template{ID: ft.ID, Name: ft.Name, Category: ft.Category, Thumbnail: ft.Thumbnail}
		seen := map[string]bool{}
		for _, fo := range ft.Objects {
			o, err := fo.object()
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", ft.ID, err)
			}
			if seen[o.ID] {
				return nil, fmt.Errorf("template %s: duplicate object id %q", ft.ID, o.ID)
			}
			seen[o.ID] = true
			t.Objects = append(t.Objects, o)
		}
		c.Templates = append(c.Templates, t)
	}
	for _, fi := range fc.Icons {
		c.Icons = append(c.Icons, Icon{Name: fi.Name, Markup: fi.Markup})
	}
	return c, nil
}

// object converts the record. Style fields left out of the file take the
// defaults a newly added object of the same kind would get.
func (fo *fileObject) object() (design.Object, error) {
	kind, err := design.ParseKind(fo.Type)
	if err != nil {
		return design.Object{}, fmt.Errorf("object %q: %w", fo.ID, err)
	}
	if fo.ID == "" {
		return design.Object{}, fmt.Errorf("%s object without id", kind)
	}
	o := design.Object{
		ID:       fo.ID,
		X:        fo.X,
		Y:        fo.Y,
		Width:    fo.Width,
		Height:   fo.Height,
		Rotation: fo.Rotation,
		Opacity:  1,
		ZIndex:   fo.ZIndex,
		Payload:  design.DefaultPayload(kind),
	}
	if fo.Opacity != nil {
		o.Opacity = geom.Clamp(*fo.Opacity, 0, 1)
	}
	switch p := o.Payload.(type) {
	case *design.Text:
		setIf(&p.Text, fo.Text)
		if fo.FontSize > 0 {
			p.FontSize = fo.FontSize
		}
		setIf(&p.FontFamily, fo.FontFamily)
		setIf(&p.FontWeight, fo.FontWeight)
		setIf(&p.FontStyle, fo.FontStyle)
		setIf(&p.TextDecoration, fo.TextDecoration)
		setIf(&p.Color, fo.Color)
		setIf(&p.TextAlign, fo.TextAlign)
	case *design.Image:
		p.Source = fo.Src
	case *design.Shape:
		if fo.ShapeType != "" {
			if err := o.Set(design.PropShapeType, fo.ShapeType); err != nil {
				return design.Object{}, fmt.Errorf("object %s: %w", fo.ID, err)
			}
		}
		setIf(&p.FillColor, fo.FillColor)
		setIf(&p.StrokeColor, fo.StrokeColor)
		p.StrokeWidth = fo.StrokeWidth
		p.BorderRadius = fo.BorderRadius
	case *design.Icon:
		p.Markup = fo.Markup
		setIf(&p.Color, fo.Color)
	}
	return o, nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
