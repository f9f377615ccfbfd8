package scene

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/satcollide/geom"
	"github.com/milk9111/satcollide/specs"
)

// runGenerator runs a generator script. Scripts see their params as the map
// `params` and emit obstacles by calling:
//
//	polygon(x, y, [[px, py], ...])
//	box(x, y, w, h)
func runGenerator(g specs.GeneratorSpec) ([]*geom.Polygon, error) {
	if strings.TrimSpace(g.Script) == "" {
		return nil, fmt.Errorf("no script")
	}
	src, err := specs.LoadScript(g.Script)
	if err != nil {
		return nil, err
	}
	return runGeneratorSource(src, g.Params)
}

func runGeneratorSource(src []byte, params map[string]any) ([]*geom.Polygon, error) {
	var out []*geom.Polygon

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	if params == nil {
		params = map[string]any{}
	}
	if err := script.Add("params", params); err != nil {
		return nil, err
	}
	if err := script.Add("polygon", &tengo.UserFunction{Name: "polygon", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		pos, err := vectorArgs("polygon", args[0], args[1])
		if err != nil {
			return nil, err
		}
		points, err := pointList(args[2])
		if err != nil {
			return nil, err
		}
		out = append(out, geom.NewPolygon(pos, points))
		return tengo.UndefinedValue, nil
	}}); err != nil {
		return nil, err
	}
	if err := script.Add("box", &tengo.UserFunction{Name: "box", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		pos, err := vectorArgs("box", args[0], args[1])
		if err != nil {
			return nil, err
		}
		size, err := vectorArgs("box", args[2], args[3])
		if err != nil {
			return nil, err
		}
		out = append(out, geom.NewBox(pos, size.X, size.Y))
		return tengo.UndefinedValue, nil
	}}); err != nil {
		return nil, err
	}

	if _, err := script.Run(); err != nil {
		return nil, err
	}
	return out, nil
}

func vectorArgs(fn string, x, y tengo.Object) (cp.Vector, error) {
	fx, ok := tengo.ToFloat64(x)
	if !ok {
		return cp.Vector{}, tengo.ErrInvalidArgumentType{Name: fn, Expected: "number", Found: x.TypeName()}
	}
	fy, ok := tengo.ToFloat64(y)
	if !ok {
		return cp.Vector{}, tengo.ErrInvalidArgumentType{Name: fn, Expected: "number", Found: y.TypeName()}
	}
	return cp.Vector{X: fx, Y: fy}, nil
}

func pointList(o tengo.Object) ([]cp.Vector, error) {
	items, ok := arrayValues(o)
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "points", Expected: "array", Found: o.TypeName()}
	}
	points := make([]cp.Vector, 0, len(items))
	for _, item := range items {
		pair, ok := arrayValues(item)
		if !ok || len(pair) != 2 {
			return nil, tengo.ErrInvalidArgumentType{Name: "point", Expected: "[x, y]", Found: item.TypeName()}
		}
		p, err := vectorArgs("point", pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func arrayValues(o tengo.Object) ([]tengo.Object, bool) {
	switch a := o.(type) {
	case *tengo.Array:
		return a.Value, true
	case *tengo.ImmutableArray:
		return a.Value, true
	default:
		return nil, false
	}
}
