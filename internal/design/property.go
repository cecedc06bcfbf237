package design

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrUnknownProperty is returned when a key does not apply to the object.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrInvalidValue is returned when a value has the wrong type.
	ErrInvalidValue = errors.New("invalid property value")
)

// Property names an editable attribute of an object.
type Property string

const (
	PropX        Property = "x"
	PropY        Property = "y"
	PropWidth    Property = "width"
	PropHeight   Property = "height"
	PropRotation Property = "rotation"
	PropOpacity  Property = "opacity"

	PropText           Property = "text"
	PropFontSize       Property = "fontSize"
	PropFontFamily     Property = "fontFamily"
	PropFontWeight     Property = "fontWeight"
	PropFontStyle      Property = "fontStyle"
	PropTextDecoration Property = "textDecoration"
	PropColor          Property = "color"
	PropTextAlign      Property = "textAlign"

	PropImageSource Property = "imageUrl"

	PropShapeType    Property = "shapeType"
	PropFillColor    Property = "fillColor"
	PropStrokeColor  Property = "strokeColor"
	PropStrokeWidth  Property = "strokeWidth"
	PropBorderRadius Property = "borderRadius"

	PropMarkup Property = "svgData"
)

// Remeasures reports whether changing p on a text object changes its box.
func (p Property) Remeasures() bool {
	switch p {
	case PropText, PropFontSize, PropFontFamily, PropFontWeight, PropFontStyle:
		return true
	}
	return false
}

// Set assigns value to property p of o. Numeric properties accept any Go
// number or a numeric string so CLI and UI input can be passed through.
func (o *Object) Set(p Property, value any) error {
	switch p {
	case PropX:
		return setFloat(&o.X, p, value)
	case PropY:
		return setFloat(&o.Y, p, value)
	case PropWidth:
		return setFloat(&o.Width, p, value)
	case PropHeight:
		return setFloat(&o.Height, p, value)
	case PropRotation:
		return setFloat(&o.Rotation, p, value)
	case PropOpacity:
		if err := setFloat(&o.Opacity, p, value); err != nil {
			return err
		}
		o.Opacity = math.Max(0, math.Min(1, o.Opacity))
		return nil
	}

	switch pl := o.Payload.(type) {
	case *Text:
		switch p {
		case PropText:
			return setString(&pl.Text, p, value)
		case PropFontSize:
			return setFloat(&pl.FontSize, p, value)
		case PropFontFamily:
			return setString(&pl.FontFamily, p, value)
		case PropFontWeight:
			return setString(&pl.FontWeight, p, value)
		case PropFontStyle:
			return setString(&pl.FontStyle, p, value)
		case PropTextDecoration:
			return setString(&pl.TextDecoration, p, value)
		case PropColor:
			return setString(&pl.Color, p, value)
		case PropTextAlign:
			return setString(&pl.TextAlign, p, value)
		}
	case *Image:
		if p == PropImageSource {
			return setString(&pl.Source, p, value)
		}
	case *Shape:
		switch p {
		case PropShapeType:
			var s string
			if err := setString(&s, p, value); err != nil {
				return err
			}
			switch ShapeKind(s) {
			case ShapeRectangle, ShapeCircle, ShapeTriangle:
				pl.ShapeKind = ShapeKind(s)
				return nil
			}
			return fmt.Errorf("%w: shape %q", ErrInvalidValue, s)
		case PropFillColor:
			return setString(&pl.FillColor, p, value)
		case PropStrokeColor:
			return setString(&pl.StrokeColor, p, value)
		case PropStrokeWidth:
			return setFloat(&pl.StrokeWidth, p, value)
		case PropBorderRadius:
			return setFloat(&pl.BorderRadius, p, value)
		}
	case *Icon:
		switch p {
		case PropMarkup:
			return setString(&pl.Markup, p, value)
		case PropColor:
			return setString(&pl.Color, p, value)
		}
	}
	return fmt.Errorf("%w: %s on %s object", ErrUnknownProperty, p, o.Kind())
}

func setFloat(dst *float64, p Property, value any) error {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, p, v)
		}
		f = parsed
	default:
		return fmt.Errorf("%w: %s=%v (%T)", ErrInvalidValue, p, value, value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidValue, p, f)
	}
	*dst = f
	return nil
}

func setString(dst *string, p Property, value any) error {
	switch v := value.(type) {
	case string:
		*dst = v
	case ShapeKind:
		*dst = string(v)
	case fmt.Stringer:
		*dst = v.String()
	default:
		return fmt.Errorf("%w: %s=%v (%T)", ErrInvalidValue, p, value, value)
	}
	return nil
}
