package vertex

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/wgsl"
)

// Embedded WGSL source of the translate stage. GPU backends and the
// CPU path share this one definition of the transform.
//
//go:embed shaders/translate.wgsl
var translateShaderSource string

// Binding coordinates of the stage's uniform block in the shader.
const (
	// StageUniformGroup is the bind group of the uniform block.
	StageUniformGroup = 0

	// StageUniformBinding is the binding index of the uniform block.
	StageUniformBinding = 0
)

// StageSource returns the WGSL source of the translate stage.
func StageSource() string { return translateShaderSource }

// ParseError reports shader source that failed to parse or validate.
// It wraps the underlying compiler error.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "vertex: shader parse: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// LinkError reports a shader whose interface does not match the
// host-side binding surface (attribute locations, component widths,
// uniform names).
type LinkError struct {
	Detail string
}

func (e *LinkError) Error() string { return "vertex: shader link: " + e.Detail }

// AttributeInfo describes one location-bound value of a shader
// interface: a vertex input or a varying output.
type AttributeInfo struct {
	// Name is the identifier in the source.
	Name string

	// Location is the @location index.
	Location uint32

	// Components is the component width of the value (1 for scalars,
	// 2-4 for vectors).
	Components int
}

// UniformInfo describes a reflected uniform block binding.
type UniformInfo struct {
	// Name is the variable name in the source.
	Name string

	// Group is the @group index.
	Group uint32

	// Binding is the @binding index.
	Binding uint32

	// Fields lists the block's struct field names in declaration order.
	// By-name uniform lookup resolves against these.
	Fields []string
}

// Interface is the reflected binding surface of a vertex-stage source:
// everything a host needs to feed the stage, extracted from the WGSL
// declarations rather than hand-maintained.
type Interface struct {
	// EntryPoint is the @vertex entry function name.
	EntryPoint string

	// Inputs are the location-bound vertex attributes the entry consumes.
	Inputs []AttributeInfo

	// Outputs are the location-bound varyings the entry produces.
	Outputs []AttributeInfo

	// BuiltinPosition reports whether the entry writes the pipeline's
	// mandated @builtin(position) output.
	BuiltinPosition bool

	// Uniform describes the uniform block, or nil if the source
	// declares none.
	Uniform *UniformInfo
}

// InputAt returns the input attribute bound to the given location.
func (i *Interface) InputAt(location uint32) (AttributeInfo, bool) {
	for _, in := range i.Inputs {
		if in.Location == location {
			return in, true
		}
	}
	return AttributeInfo{}, false
}

// ReflectInterface parses a vertex-stage WGSL source and extracts its
// binding surface. Returns *ParseError if the source does not parse and
// *LinkError if it parses but declares no @vertex entry point.
func ReflectInterface(source string) (*Interface, error) {
	mod, err := naga.Parse(source)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var entry *wgsl.FunctionDecl
	for _, fn := range mod.Functions {
		if hasAttr(fn.Attributes, "vertex") {
			entry = fn
			break
		}
	}
	if entry == nil {
		return nil, &LinkError{Detail: "no @vertex entry point"}
	}

	iface := &Interface{EntryPoint: entry.Name}
	for _, p := range entry.Params {
		if loc, ok := attrUint(p.Attributes, "location"); ok {
			iface.Inputs = append(iface.Inputs, AttributeInfo{
				Name:       p.Name,
				Location:   loc,
				Components: typeComponents(p.Type),
			})
		}
	}

	structs := make(map[string]*wgsl.StructDecl, len(mod.Structs))
	for _, sd := range mod.Structs {
		structs[sd.Name] = sd
	}

	// Outputs come either from a returned struct or from attributes on
	// a direct return type.
	if named, ok := entry.ReturnType.(*wgsl.NamedType); ok {
		if sd, found := structs[named.Name]; found {
			for _, m := range sd.Members {
				if b, ok := attrIdent(m.Attributes, "builtin"); ok {
					if b == "position" {
						iface.BuiltinPosition = true
					}
					continue
				}
				if loc, ok := attrUint(m.Attributes, "location"); ok {
					iface.Outputs = append(iface.Outputs, AttributeInfo{
						Name:       m.Name,
						Location:   loc,
						Components: typeComponents(m.Type),
					})
				}
			}
		}
	}
	if b, ok := attrIdent(entry.ReturnAttrs, "builtin"); ok && b == "position" {
		iface.BuiltinPosition = true
	}

	for _, v := range mod.GlobalVars {
		if v.AddressSpace != "uniform" {
			continue
		}
		info := &UniformInfo{Name: v.Name}
		if g, ok := attrUint(v.Attributes, "group"); ok {
			info.Group = g
		}
		if b, ok := attrUint(v.Attributes, "binding"); ok {
			info.Binding = b
		}
		if named, ok := v.Type.(*wgsl.NamedType); ok {
			if sd, found := structs[named.Name]; found {
				for _, m := range sd.Members {
					info.Fields = append(info.Fields, m.Name)
				}
			}
		}
		iface.Uniform = info
		break
	}

	return iface, nil
}

// ValidateSource runs the full compiler front end over a shader source:
// parse, lower, validate. Returns *ParseError describing the first
// failure, or nil if the source is valid WGSL.
func ValidateSource(source string) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return &ParseError{Err: err}
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return &ParseError{Err: err}
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return &ParseError{Err: err}
	}
	if len(verrs) > 0 {
		return &ParseError{Err: &verrs[0]}
	}
	return nil
}

// CompileStageSPIRV compiles the embedded stage source to SPIR-V,
// the binary form Vulkan-level backends consume.
func CompileStageSPIRV() ([]byte, error) {
	spv, err := naga.Compile(translateShaderSource)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return spv, nil
}

// ValidateStageInterface reflects the embedded stage source and checks
// it against the host-side surface: attribute slots, component widths,
// uniform block coordinates and field names. A mismatch is a bug in the
// shader or the constants; the error names the first disagreement.
func ValidateStageInterface() error {
	iface, err := ReflectInterface(translateShaderSource)
	if err != nil {
		return err
	}
	if !iface.BuiltinPosition {
		return &LinkError{Detail: "entry point does not write @builtin(position)"}
	}
	pos, ok := iface.InputAt(SlotPosition)
	if !ok || pos.Components != PositionComponents {
		return &LinkError{Detail: fmt.Sprintf("location %d: want %d-component position", SlotPosition, PositionComponents)}
	}
	col, ok := iface.InputAt(SlotColor)
	if !ok || col.Components != ColorComponents {
		return &LinkError{Detail: fmt.Sprintf("location %d: want %d-component color", SlotColor, ColorComponents)}
	}
	u := iface.Uniform
	if u == nil {
		return &LinkError{Detail: "no uniform block declared"}
	}
	if u.Group != StageUniformGroup || u.Binding != StageUniformBinding {
		return &LinkError{Detail: fmt.Sprintf("uniform block at group %d binding %d, want %d/%d",
			u.Group, u.Binding, StageUniformGroup, StageUniformBinding)}
	}
	names := UniformNames()
	if len(u.Fields) != len(names) {
		return &LinkError{Detail: fmt.Sprintf("uniform block has %d fields, want %d", len(u.Fields), len(names))}
	}
	for i, name := range names {
		if u.Fields[i] != name {
			return &LinkError{Detail: fmt.Sprintf("uniform field %d is %q, want %q", i, u.Fields[i], name)}
		}
	}
	return nil
}

// LinkLayout checks vertex buffer layouts against a reflected
// interface: every input the shader declares must be fed by exactly one
// attribute at the same location with the same component width.
// Returns *LinkError naming the first input that is not satisfied.
func LinkLayout(iface *Interface, layouts ...gputypes.VertexBufferLayout) error {
	for _, in := range iface.Inputs {
		attr, ok := findLayoutAttr(layouts, in.Location)
		if !ok {
			return &LinkError{Detail: fmt.Sprintf("no attribute feeds location %d (%s)", in.Location, in.Name)}
		}
		if got := int(formatByteSize(attr.Format) / 4); got != in.Components {
			return &LinkError{Detail: fmt.Sprintf("location %d (%s): layout supplies %d components, shader wants %d",
				in.Location, in.Name, got, in.Components)}
		}
	}
	return nil
}

func findLayoutAttr(layouts []gputypes.VertexBufferLayout, location uint32) (gputypes.VertexAttribute, bool) {
	for _, l := range layouts {
		for _, a := range l.Attributes {
			if a.ShaderLocation == location {
				return a, true
			}
		}
	}
	return gputypes.VertexAttribute{}, false
}

func hasAttr(attrs []wgsl.Attribute, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

func attrUint(attrs []wgsl.Attribute, name string) (uint32, bool) {
	for _, a := range attrs {
		if a.Name != name || len(a.Args) == 0 {
			continue
		}
		if lit, ok := a.Args[0].(*wgsl.Literal); ok {
			if v, err := strconv.ParseUint(lit.Value, 10, 32); err == nil {
				return uint32(v), true
			}
		}
	}
	return 0, false
}

func attrIdent(attrs []wgsl.Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name != name || len(a.Args) == 0 {
			continue
		}
		if id, ok := a.Args[0].(*wgsl.Ident); ok {
			return id.Name, true
		}
	}
	return "", false
}

func typeComponents(t wgsl.Type) int {
	named, ok := t.(*wgsl.NamedType)
	if !ok {
		return 0
	}
	switch named.Name {
	case "vec2":
		return 2
	case "vec3":
		return 3
	case "vec4":
		return 4
	case "f32", "i32", "u32":
		return 1
	default:
		return 0
	}
}
